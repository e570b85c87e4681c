// Package cli is the interactive terminal front end of the client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cherishedwords/internal/client"
	"cherishedwords/internal/client/view"
)

// Shell runs the read-eval-print loop over a client.App.
type Shell struct {
	app      *client.App
	renderer *view.Renderer
	in       *bufio.Reader
	out      io.Writer

	// Terminal input, when set, reads secrets without echo.
	ttyFd    int
	terminal bool
}

// NewShell creates a shell reading commands from in and writing to out.
func NewShell(app *client.App, renderer *view.Renderer, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		app:      app,
		renderer: renderer,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// WithTerminal makes secret prompts read from the terminal fd without echo.
func (s *Shell) WithTerminal(fd int) *Shell {
	s.ttyFd = fd
	s.terminal = true
	return s
}

func (s *Shell) prompt() string {
	snap := s.app.Snapshot()
	if snap.SignedIn {
		return fmt.Sprintf("love (%s)> ", snap.Email)
	}
	return fmt.Sprintf("love (%s)> ", snap.AuthMode)
}

// Run reads commands until EOF, "exit" or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Cherished Words (type 'help' for commands)")
	s.render()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, s.prompt())
		line, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		if quit := s.dispatch(ctx, line); quit {
			return nil
		}
		if eof {
			fmt.Fprintln(s.out)
			return nil
		}
	}
}

// dispatch runs one command line. It reports true when the shell should stop.
func (s *Shell) dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := parts[0], parts[1:]

	var err error
	switch cmd {
	case "help":
		s.help()
		return false
	case "exit", "quit":
		fmt.Fprintln(s.out, "Bye!")
		return true
	case "mode":
		err = s.mode(args)
	case "signin":
		err = s.authenticate(ctx, client.AuthModeSignIn, args)
	case "signup":
		err = s.authenticate(ctx, client.AuthModeSignUp, args)
	case "signout", "logout":
		s.app.SignOut()
	case "l", "list":
	case "refresh":
		err = s.requireSession(func() error {
			s.app.FetchAll(ctx)
			return nil
		})
	case "create":
		err = s.requireSession(func() error {
			s.app.ToggleCreateForm()
			return nil
		})
	case "form":
		err = s.requireSession(func() error { return s.form(ctx, args, remainder(line, 2)) })
	case "unlock":
		err = s.requireSession(func() error { return s.unlock(args) })
	case "flip":
		err = s.requireSession(func() error { return s.flip(args) })
	case "delete":
		err = s.requireSession(func() error { return s.delete(ctx, args) })
	default:
		fmt.Fprintln(s.out, "Unknown command:", cmd)
		return false
	}
	s.report(err)
	s.render()
	return false
}

func (s *Shell) help() {
	if s.app.Snapshot().SignedIn {
		fmt.Fprintln(s.out, "Available commands: (l)ist, create, form <field> [value], form submit, form cancel,")
		fmt.Fprintln(s.out, "  unlock <id>, flip <id>, delete <id>, refresh, signout, exit")
		return
	}
	fmt.Fprintln(s.out, "Available commands: signin <email>, signup <email>, mode signin|signup, exit")
}

// report prints err unless the app already shows it as a notice.
func (s *Shell) report(err error) {
	if err == nil {
		return
	}
	if s.app.Snapshot().Notice == "" {
		fmt.Fprintln(s.out, "Error:", err)
	}
}

func (s *Shell) render() {
	if err := s.renderer.Render(s.out, s.app.Snapshot()); err != nil {
		fmt.Fprintln(s.out, "Error:", err)
	}
	s.app.DismissNotice()
}

func (s *Shell) requireSession(fn func() error) error {
	if _, ok := s.app.Session().Current(); !ok {
		return client.ErrNotSignedIn
	}
	return fn()
}

// remainder returns line after its first n fields and the single blank that
// follows them. The rest is kept verbatim, inner and trailing spaces included.
func remainder(line string, n int) string {
	line = strings.TrimRight(line, "\r\n")
	for i := 0; i < n; i++ {
		line = strings.TrimLeft(line, " \t")
		end := strings.IndexAny(line, " \t")
		if end < 0 {
			return ""
		}
		line = line[end:]
	}
	if line != "" {
		line = line[1:]
	}
	return line
}

func (s *Shell) secret(prompt string) (string, error) {
	return GetSecret(s.in, prompt, s.out, s.ttyFd, s.terminal)
}
