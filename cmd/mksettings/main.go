//go:build !tinygo

// Command mksettings writes a flash image holding a settings record, for
// preloading the simulator, or prints the record of an existing image.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"manageaudio/firmware/render"
	"manageaudio/firmware/settings"
)

const (
	defaultFlashPath = "manageaudio.flash"
	defaultFlashSize = 64 * 1024
	defaultEraseSize = 4096
)

// flashFile is a file-backed NOR flash image.
type flashFile struct {
	f         *os.File
	size      uint32
	eraseSize uint32

	erased []byte
}

func createFlashFile(path string, size, eraseSize uint32) (*flashFile, error) {
	if eraseSize == 0 || eraseSize%256 != 0 {
		return nil, fmt.Errorf("flash: invalid erase size %d", eraseSize)
	}
	if size == 0 || size%eraseSize != 0 {
		return nil, fmt.Errorf("flash: size %d not multiple of erase size %d", size, eraseSize)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash file %q: %w", path, err)
	}

	ff := &flashFile{f: f, size: size, eraseSize: eraseSize, erased: make([]byte, eraseSize)}
	for i := range ff.erased {
		ff.erased[i] = 0xFF
	}
	if err := ff.Erase(0, size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("erase flash file %q: %w", path, err)
	}
	return ff, nil
}

func openFlashFile(path string, eraseSize uint32) (*flashFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open flash file %q: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat flash file %q: %w", path, err)
	}
	return &flashFile{f: f, size: uint32(st.Size()), eraseSize: eraseSize}, nil
}

func (f *flashFile) Close() error { return f.f.Close() }

func (f *flashFile) SizeBytes() uint32       { return f.size }
func (f *flashFile) EraseBlockBytes() uint32 { return f.eraseSize }

func (f *flashFile) ReadAt(p []byte, off uint32) (int, error) {
	if off >= f.size {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	if maxN := int(f.size - off); len(p) > maxN {
		p = p[:maxN]
	}
	return f.f.ReadAt(p, int64(off))
}

func (f *flashFile) WriteAt(p []byte, off uint32) (int, error) {
	if off >= f.size {
		return 0, fmt.Errorf("flash write at %d: %w", off, os.ErrInvalid)
	}
	if maxN := int(f.size - off); len(p) > maxN {
		p = p[:maxN]
	}

	prev := make([]byte, len(p))
	if _, err := f.f.ReadAt(prev, int64(off)); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i := range p {
		if prev[i]&p[i] != p[i] {
			return 0, errors.New("flash write requires erase")
		}
	}
	return f.f.WriteAt(p, int64(off))
}

func (f *flashFile) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	if off%f.eraseSize != 0 || size%f.eraseSize != 0 || off+size > f.size {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	for ; size > 0; size -= f.eraseSize {
		if _, err := f.f.WriteAt(f.erased, int64(off)); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", off, err)
		}
		off += f.eraseSize
	}
	return nil
}

// parseMeter accepts a meter name or its number.
func parseMeter(s string) (render.MeterType, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= int(render.NumMeters) {
			return 0, fmt.Errorf("meter %d out of range", n)
		}
		return render.MeterType(n), nil
	}
	for m := render.MeterFFT; m < render.NumMeters; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown meter %q", s)
}

type options struct {
	out        string
	size       uint
	erase      uint
	offset     uint
	brightness uint8
	source     uint8
	meter      string
	show       string
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "mksettings",
		Short: "Write a flash image with a settings record",
		Long: `Write a flash image holding one settings record at --offset.

With --show, decode the record of an existing image instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.show != "" {
				return show(cmd.OutOrStdout(), o)
			}
			return write(cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.out, "out", "o", defaultFlashPath, "output flash image path")
	f.UintVar(&o.size, "size", defaultFlashSize, "flash image size (bytes)")
	f.UintVar(&o.erase, "erase", defaultEraseSize, "erase block size (bytes)")
	f.UintVar(&o.offset, "offset", 0, "record offset (bytes)")
	f.Uint8VarP(&o.brightness, "brightness", "b", 0, "brightness level (0-4)")
	f.Uint8VarP(&o.source, "source", "s", 0, "audio source (0=AUX 1=RADIO 2=CD 3=TAPE)")
	f.StringVarP(&o.meter, "meter", "m", render.MeterFFT.String(), "meter type (FFT, VU-Horiz, VU-Vert or 0-2)")
	f.StringVar(&o.show, "show", "", "print the record stored in this image")
	return cmd
}

func write(w io.Writer, o options) error {
	m, err := parseMeter(o.meter)
	if err != nil {
		return err
	}
	ff, err := createFlashFile(o.out, uint32(o.size), uint32(o.erase))
	if err != nil {
		return err
	}
	defer func() { _ = ff.Close() }()

	v := settings.Settings{Brightness: o.brightness, Source: o.source, Meter: m}
	if err := settings.NewStore(ff, uint32(o.offset), nil).Save(v); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %s\n", o.out, v)
	return err
}

func show(w io.Writer, o options) error {
	ff, err := openFlashFile(o.show, uint32(o.erase))
	if err != nil {
		return err
	}
	defer func() { _ = ff.Close() }()

	v, err := settings.NewStore(ff, uint32(o.offset), nil).Load()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %s meter=%s\n", o.show, v, v.Meter)
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
