//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

// Package terminal drives a tty directly: line discipline, non-blocking input,
// single-byte reads and raw byte output.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when input is not attached to a terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Raw is a terminal with echo, canonical mode and signal keys switched off.
// Unlike term.MakeRaw, output processing is left on so '\n' still returns
// the carriage.
type Raw struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int

	oldTermios *unix.Termios
	oldFlags   int
	nonBlock   bool

	buf [1]byte
}

// Open wraps the given input and output files. Nothing is changed until
// EnableRawMode and EnableNonBlocking are called.
func Open(in, out *os.File) *Raw {
	return &Raw{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}
}

// EnableRawMode saves the current line discipline and disables echo,
// canonical input and signal-generating keys.
func (r *Raw) EnableRawMode() error {
	if !term.IsTerminal(r.inFd) {
		return ErrNotTerminal
	}

	old, err := unix.IoctlGetTermios(r.inFd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}

	raw := *old
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG
	if err := unix.IoctlSetTermios(r.inFd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("set termios: %w", err)
	}

	r.oldTermios = old
	return nil
}

// DisableRawMode restores the line discipline saved by EnableRawMode.
func (r *Raw) DisableRawMode() error {
	if r.oldTermios == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(r.inFd, ioctlSetTermios, r.oldTermios); err != nil {
		return fmt.Errorf("restore termios: %w", err)
	}
	r.oldTermios = nil
	return nil
}

// EnableNonBlocking sets O_NONBLOCK on the input descriptor, remembering the
// previous flags.
func (r *Raw) EnableNonBlocking() error {
	flags, err := unix.FcntlInt(uintptr(r.inFd), unix.F_GETFL, 0)
	if err != nil {
		return fmt.Errorf("get file flags: %w", err)
	}
	if _, err := unix.FcntlInt(uintptr(r.inFd), unix.F_SETFL, flags|unix.O_NONBLOCK); err != nil {
		return fmt.Errorf("set non-blocking: %w", err)
	}

	r.oldFlags = flags
	r.nonBlock = true
	return nil
}

// DisableNonBlocking restores the flags saved by EnableNonBlocking.
func (r *Raw) DisableNonBlocking() error {
	if !r.nonBlock {
		return nil
	}
	if _, err := unix.FcntlInt(uintptr(r.inFd), unix.F_SETFL, r.oldFlags); err != nil {
		return fmt.Errorf("restore file flags: %w", err)
	}
	r.nonBlock = false
	return nil
}

// ReadByte reads at most one byte. It returns 0 when nothing is waiting or the
// read fails, so an idle keyboard looks the same as no key.
func (r *Raw) ReadByte() byte {
	r.buf[0] = 0
	n, err := unix.Read(r.inFd, r.buf[:])
	if err != nil || n <= 0 {
		return 0
	}
	return r.buf[0]
}

// Write writes p to the output in full. Input and output usually share one
// tty, so the output descriptor is non-blocking too and a full buffer is
// retried until it drains.
func (r *Raw) Write(p []byte) error {
	for len(p) > 0 {
		n, err := unix.Write(r.outFd, p)
		if err == unix.EAGAIN || err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// Now returns the current time; its monotonic reading drives tick gating.
func (r *Raw) Now() time.Time {
	return time.Now()
}

// Size returns the output terminal's dimensions.
func (r *Raw) Size() (width, height int, err error) {
	return term.GetSize(r.outFd)
}
