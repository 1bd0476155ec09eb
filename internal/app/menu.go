package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/calculator/internal/calculator"
	"github.com/dshills/calculator/internal/operation"
)

// Menu choices.
const (
	choiceCalculate = "1"
	choiceHistory   = "2"
	choiceSave      = "3"
	choiceQuit      = "4"
)

// menu runs the interactive loop over line-oriented input.
type menu struct {
	app     *Application
	scanner *bufio.Scanner
	out     io.Writer
	log     *Logger
}

// Run shows the main menu until the user quits or input ends.
// Calculation and save errors are reported and the loop continues.
func (app *Application) Run() error {
	m := &menu{
		app:     app,
		scanner: bufio.NewScanner(app.input),
		out:     app.output,
		log:     app.logger.WithComponent("menu"),
	}

	fmt.Fprintln(m.out, "EXTENSIBLE CALCULATOR")
	fmt.Fprintln(m.out, "=====================")

	for {
		err := m.step()
		if errors.Is(err, ErrQuit) {
			break
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(m.out, "Thank you for using the calculator!")
	m.log.Info("session finished")
	return nil
}

// step handles one menu choice.
func (m *menu) step() error {
	m.app.reloadPlugins()
	m.showMenu()

	choice, err := m.readLine()
	if err != nil {
		return err
	}

	switch choice {
	case choiceCalculate:
		return m.report("calculation", m.calculate())
	case choiceHistory:
		return m.app.history.Display(m.out)
	case choiceSave:
		return m.report("save", m.save())
	case choiceQuit:
		return ErrQuit
	default:
		fmt.Fprintln(m.out, "Invalid choice!")
		return nil
	}
}

func (m *menu) showMenu() {
	fmt.Fprintln(m.out, "\n=== MAIN MENU ===")
	fmt.Fprintln(m.out, "1 - New calculation")
	fmt.Fprintln(m.out, "2 - Show history")
	fmt.Fprintln(m.out, "3 - Save history to file")
	fmt.Fprintln(m.out, "4 - Exit")
	fmt.Fprint(m.out, "Choose an option: ")
}

// report prints and logs a failed action. ErrQuit and input errors are
// passed through to stop the loop.
func (m *menu) report(action string, err error) error {
	if err == nil || errors.Is(err, ErrQuit) {
		return err
	}
	var readErr *inputError
	if errors.As(err, &readErr) {
		return err
	}

	fmt.Fprintf(m.out, "Error: %v\n", err)
	m.log.Warn("%s failed: %v", action, err)
	return nil
}

func (m *menu) listOperations() {
	fmt.Fprintln(m.out, "\nAvailable operations:")
	for _, info := range m.app.calculator.Operations() {
		fmt.Fprintf(m.out, "  %s - %s\n", info.Symbol, info.Description)
	}
}

// calculate prompts for operands and a symbol and performs the
// calculation. Unary operations do not ask for a second operand.
func (m *menu) calculate() error {
	m.listOperations()

	fmt.Fprint(m.out, "\nEnter the first number: ")
	a, err := m.readNumber()
	if err != nil {
		return err
	}

	fmt.Fprint(m.out, "Enter the operation symbol: ")
	symbol, err := m.readLine()
	if err != nil {
		return err
	}

	var b float64
	if op, ok := m.app.calculator.Lookup(symbol); !ok || !operation.IsUnary(op) {
		fmt.Fprint(m.out, "Enter the second number: ")
		if b, err = m.readNumber(); err != nil {
			return err
		}
	}

	result, err := m.app.calculator.Perform(a, b, symbol)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "\nResult: %s\n", calculator.FormatNumber(result))
	return nil
}

func (m *menu) save() error {
	path := m.app.config.History.File
	if err := m.app.history.SaveToFile(path); err != nil {
		return err
	}

	fmt.Fprintf(m.out, "History saved to file: %s\n", path)
	m.log.Info("history saved to %s (%d entries)", path, m.app.history.Len())
	return nil
}

// inputError wraps a failure reading from the input stream.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return "reading input: " + e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

// readLine returns the next trimmed input line.
// End of input is reported as ErrQuit.
func (m *menu) readLine() (string, error) {
	if !m.scanner.Scan() {
		if err := m.scanner.Err(); err != nil {
			return "", &inputError{err: err}
		}
		return "", ErrQuit
	}
	return strings.TrimSpace(m.scanner.Text()), nil
}

// readNumber reads lines until one parses as a floating-point number.
func (m *menu) readNumber() (float64, error) {
	for {
		line, err := m.readLine()
		if err != nil {
			return 0, err
		}

		v, err := strconv.ParseFloat(line, 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprint(m.out, "Invalid number format. Try again: ")
	}
}
