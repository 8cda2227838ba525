// Package console is the interactive terminal front end of the calculator.
// Each input line is one command; the summary is redrawn after every
// command that changes state.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitchellh/colorstring"

	"eurocalc/internal/calculator"
	"eurocalc/internal/report"
	"eurocalc/pkg/errors"
	"eurocalc/pkg/logger"
)

// Exporter writes a summary to path.
type Exporter func(path string, sum calculator.Summary) error

type Console struct {
	session *calculator.Session
	out     io.Writer
	logger  logger.Logger
	color   colorstring.Colorize
	export  Exporter
}

type command struct {
	usage   string
	help    string
	redraw  bool
	handler func(c *Console, args []string) error
}

var commands map[string]*command

var commandOrder = []string{
	"doc", "rate", "currency", "amount", "quick", "add", "rm", "reset", "show", "export", "help", "quit",
}

var aliases = map[string]string{
	"cur":     "currency",
	"remove":  "rm",
	"new":     "reset",
	"summary": "show",
	"exit":    "quit",
}

func init() {
	commands = map[string]*command{
		"doc":      {usage: "doc <amount>", help: "set the document amount", redraw: true, handler: (*Console).cmdDocument},
		"rate":     {usage: "rate <value>", help: "set the conversion rate (editable profile)", redraw: true, handler: (*Console).cmdRate},
		"currency": {usage: "currency <code>", help: "choose the currency of the next payment", redraw: true, handler: (*Console).cmdCurrency},
		"amount":   {usage: "amount [value]", help: "set or clear the amount of the next payment", redraw: true, handler: (*Console).cmdAmount},
		"quick":    {usage: "quick <value>", help: "use a preset amount for the next payment", redraw: true, handler: (*Console).cmdQuick},
		"add":      {usage: "add [amount]", help: "record the next payment", redraw: true, handler: (*Console).cmdAdd},
		"rm":       {usage: "rm <id>", help: "remove a payment by id", redraw: true, handler: (*Console).cmdRemove},
		"reset":    {usage: "reset", help: "clear all payments", redraw: true, handler: (*Console).cmdReset},
		"show":     {usage: "show", help: "print the summary", redraw: true, handler: func(*Console, []string) error { return nil }},
		"export":   {usage: "export <file.xlsx>", help: "write the statement to a spreadsheet", handler: (*Console).cmdExport},
		"help":     {usage: "help", help: "list commands", handler: (*Console).cmdHelp},
		"quit":     {usage: "quit", help: "leave the calculator"},
	}
}

// New builds a console bound to session. Statements are exported with
// report.SaveStatement.
func New(session *calculator.Session, out io.Writer, log logger.Logger, color bool) *Console {
	return &Console{
		session: session,
		out:     out,
		logger:  log,
		color:   newColorize(color),
		export:  report.SaveStatement,
	}
}

// WithExporter replaces the statement exporter.
func (c *Console) WithExporter(e Exporter) *Console {
	c.export = e
	return c
}

// Run reads commands from in until it is exhausted, a quit command is
// read or ctx is done. When ctx is done and in is an io.Closer it is closed
// to release the pending read; any other reader keeps its read goroutine
// until the read returns.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	c.logger.Info("Console started", map[string]interface{}{
		"session_id": c.session.ID().String(),
		"profile":    c.session.Profile().Name,
	})
	c.printf("[bold]Payment calculator[reset] (%s profile). Type \"help\" for commands.\n", c.session.Profile().Name)
	c.print(Render(c.session.Summary(), c.color))

	for {
		c.prompt()
		select {
		case <-ctx.Done():
			if closer, ok := in.(io.Closer); ok {
				_ = closer.Close()
			}
			fmt.Fprintln(c.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			quit, err := c.Execute(line)
			if err != nil {
				c.notice(err)
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute runs a single command line. Errors are user mistakes and leave
// the session usable; quit reports whether the user asked to leave.
func (c *Console) Execute(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	verb := strings.ToLower(fields[0])
	if name, ok := aliases[verb]; ok {
		verb = name
	}
	cmd, ok := commands[verb]
	if !ok {
		return false, errors.Wrap(errors.ErrUnknownCommand, fields[0])
	}
	if verb == "quit" {
		return true, nil
	}

	err = cmd.handler(c, fields[1:])
	if cmd.redraw {
		c.print(Render(c.session.Summary(), c.color))
	}
	return false, err
}

func (c *Console) cmdDocument(args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrMissingArgument, "doc <amount>")
	}
	c.session.SetDocumentAmount(args[0])
	if _, ok := calculator.Parse(args[0]); !ok {
		return errors.Wrap(errors.ErrInvalidAmount, "document treated as 0")
	}
	return nil
}

func (c *Console) cmdRate(args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrMissingArgument, "rate <value>")
	}
	return c.session.SetRate(args[0])
}

func (c *Console) cmdCurrency(args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrMissingArgument, "currency <code>")
	}
	cur, ok := c.session.Profile().CurrencyByCode(args[0])
	if !ok {
		return errors.Wrap(errors.ErrInvalidCurrency, args[0])
	}
	return c.session.SetPendingCurrency(cur)
}

func (c *Console) cmdAmount(args []string) error {
	c.session.SetPendingAmount(strings.Join(args, ""))
	return nil
}

func (c *Console) cmdQuick(args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrMissingArgument, "quick <value>")
	}
	v, ok := calculator.Parse(args[0])
	if !ok {
		return errors.Wrap(errors.ErrInvalidAmount, args[0])
	}
	return c.session.ApplyQuickAmount(v)
}

func (c *Console) cmdAdd(args []string) error {
	if len(args) > 0 {
		c.session.SetPendingAmount(args[0])
	}
	p, err := c.session.SubmitPending()
	if err != nil {
		return err
	}
	c.printf("[green]Added payment #%d.\n", p.ID)
	return nil
}

func (c *Console) cmdRemove(args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrMissingArgument, "rm <id>")
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || !c.session.RemovePayment(id) {
		return errors.Wrap(errors.ErrPaymentNotFound, args[0])
	}
	return nil
}

func (c *Console) cmdReset(args []string) error {
	c.session.Reset()
	return nil
}

func (c *Console) cmdExport(args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrMissingArgument, "export <file.xlsx>")
	}
	path := args[0]
	if err := c.export(path, c.session.Summary()); err != nil {
		c.logger.Warn("Statement export failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return err
	}
	c.logger.Info("Statement exported", map[string]interface{}{
		"session_id": c.session.ID().String(),
		"path":       path,
	})
	c.printf("Statement written to %s\n", path)
	return nil
}

func (c *Console) cmdHelp(args []string) error {
	var b strings.Builder
	for _, name := range commandOrder {
		cmd := commands[name]
		fmt.Fprintf(&b, "  %-20s %s\n", cmd.usage, cmd.help)
	}
	c.print(b.String())
	return nil
}

func (c *Console) prompt() {
	fmt.Fprint(c.out, "> ")
}

func (c *Console) notice(err error) {
	c.printf("[red]! %s\n", err.Error())
}

func (c *Console) printf(format string, a ...interface{}) {
	fmt.Fprint(c.out, c.color.Color(fmt.Sprintf(format, a...)))
}

func (c *Console) print(s string) {
	fmt.Fprint(c.out, s)
}
