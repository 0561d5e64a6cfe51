package system

import (
	"testing"

	"manageaudio/hal/vfd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerFlags(t *testing.T) {
	var tk Ticker

	assert.Equal(t, Flags{}, tk.Update(Tick10msMicros), "exactly 10 ms is not enough")

	var tens, fifties int
	now := uint64(0)
	for i := 0; i < 50; i++ {
		now += Tick10msMicros + 1
		f := tk.Update(now)
		require.True(t, f.Tick10ms)
		tens++
		if f.Tick50ms {
			fifties++
		}
		assert.Equal(t, Flags{}, tk.Update(now+100))
	}
	assert.Equal(t, 50, tens)
	assert.Equal(t, 10, fifties)
}

func TestTickerFifthFlagIs50ms(t *testing.T) {
	var tk Ticker
	now := uint64(0)
	for i := 1; i <= 10; i++ {
		now += 20000
		f := tk.Update(now)
		assert.Equal(t, i%5 == 0, f.Tick50ms, "flag %d", i)
	}
}

func TestTickerNil(t *testing.T) {
	var tk *Ticker
	assert.Equal(t, Flags{}, tk.Update(1<<40))
}

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

func TestFatalLatchesFirstDiagnostic(t *testing.T) {
	d := vfd.New(1, 10, nil)
	d.Power(false)
	var log lines
	var h Halt

	assert.False(t, h.Halted())
	assert.Empty(t, h.Diagnostic())

	h.Fatal(d, &log, DiagNoISR, "conversion while idle")
	assert.True(t, h.Halted())
	assert.Equal(t, DiagNoISR, h.Diagnostic())
	assert.Equal(t, "NO ISR!   ", d.Text(0))
	assert.True(t, d.Powered())
	assert.Equal(t, 1, d.Flushes())
	require.NotEmpty(t, log)
	assert.Equal(t, "fatal: NO ISR!: conversion while idle", log[0])

	h.Fatal(d, &log, DiagPanic, "later")
	assert.Equal(t, DiagNoISR, h.Diagnostic())
	assert.Equal(t, "NO ISR!   ", d.Text(0))
}

func TestFatalWithoutCollaborators(t *testing.T) {
	var h Halt
	h.Fatal(nil, nil, DiagPanic, nil)
	assert.True(t, h.Halted())

	var nilHalt *Halt
	nilHalt.Fatal(nil, nil, DiagPanic, nil)
	assert.False(t, nilHalt.Halted())
}
