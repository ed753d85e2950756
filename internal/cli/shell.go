package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/auth"
	"github.com/roach88/roster/internal/query"
	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/schema"
	"github.com/roach88/roster/internal/sorting"
	"github.com/roach88/roster/internal/store"
)

// errExit ends the menu loop.
var errExit = errors.New("exit requested")

const menu = `
===== STUDENT RECORD MANAGEMENT =====
1. Add Student
2. Display All Students
3. Display Compact List
4. Sort Students
5. Search Students
6. Binary Search by ID
7. Update Student
8. Delete Student
9. Save
0. Save & Exit`

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive menu",
		Long: `Open the interactive menu. This is also what roster does without a subcommand.

Changes are kept in memory until "Save" or "Save & Exit". Closing the
input (Ctrl-D) saves and exits. When the admin gate is enabled, the
menu is shown only after a successful login.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(rootOpts, cmd)
		},
	}
}

func runShell(opts *RootOptions, cmd *cobra.Command) error {
	return withSession(opts, cmd, func(ctx context.Context, s *session) error {
		// The menu is for people; JSON applies to one-shot commands only.
		s.out.Format = "text"
		sh := &shell{
			ctx: ctx,
			s:   s,
			p:   newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
			w:   cmd.OutOrStdout(),
		}
		if err := sh.login(); err != nil {
			return err
		}
		return sh.loop()
	})
}

type shell struct {
	ctx context.Context
	s   *session
	p   *prompter
	w   io.Writer
}

func (sh *shell) login() error {
	gate := sh.s.gate
	if !gate.Enabled() {
		return nil
	}

	err := gate.Login(func(attempt int) (auth.Credentials, error) {
		if attempt > 1 {
			fmt.Fprintf(sh.w, "Invalid credentials. Attempt %d of %d.\n", attempt, gate.MaxAttempts())
		}
		id, err := sh.p.ask("Admin ID: ")
		if err != nil {
			return auth.Credentials{}, err
		}
		password, err := sh.p.ask("Password: ")
		if err != nil {
			return auth.Credentials{}, err
		}
		return auth.Credentials{ID: id, Password: password}, nil
	})
	if err != nil {
		return sh.s.out.Fail(ExitCommandError, ErrCodeAuthFailed, "admin login failed", err)
	}
	return nil
}

func (sh *shell) loop() error {
	for {
		fmt.Fprintln(sh.w, menu)
		choice, err := sh.p.ask("Choose: ")
		if err == nil {
			err = sh.dispatch(strings.TrimSpace(choice))
		}

		switch {
		case err == nil:
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			return sh.exit()
		default:
			// Keep the session's changes even though input is gone.
			if saveErr := sh.s.save(sh.ctx); saveErr != nil {
				slog.Error("save after input failure", "error", saveErr)
			}
			return sh.s.out.Fail(ExitCommandError, ErrCodeGeneric, "reading input failed", err)
		}
	}
}

func (sh *shell) dispatch(choice string) error {
	slog.Debug("menu choice", "choice", choice)
	switch choice {
	case "1":
		return sh.add()
	case "2":
		writeRecords(sh.w, sh.s.store.All(), false)
	case "3":
		writeRecords(sh.w, sh.s.store.All(), true)
	case "4":
		return sh.sort()
	case "5":
		return sh.search()
	case "6":
		return sh.binarySearch()
	case "7":
		return sh.update()
	case "8":
		return sh.delete()
	case "9":
		sh.save()
	case "0":
		return errExit
	default:
		fmt.Fprintln(sh.w, "Invalid option!")
	}
	return nil
}

// exit saves and ends the session. A failed save is an error so that the
// caller's exit status shows the data was not written.
func (sh *shell) exit() error {
	if err := sh.s.save(sh.ctx); err != nil {
		return sh.s.out.Fail(ExitCommandError, ErrCodeSaveFailed, msgSaveFailed, err)
	}
	fmt.Fprintln(sh.w, "Data saved. Goodbye!")
	return nil
}

func (sh *shell) save() {
	if err := sh.s.save(sh.ctx); err != nil {
		_ = sh.s.out.Error(ErrCodeSaveFailed, msgSaveFailed, err.Error())
		return
	}
	sh.s.out.Notice("Saved %d student(s) to %s.", sh.s.store.Len(), sh.s.gateway.Location())
}

func (sh *shell) field(name string) func(string) error {
	return func(s string) error {
		return sh.s.validator.Field(name, s)
	}
}

func (sh *shell) age(n int) error {
	return sh.s.validator.Field(schema.FieldAge, n)
}

func (sh *shell) add() error {
	var d record.Draft
	var err error

	if d.Name, err = sh.p.askUntil("Enter student name: ", sh.field(schema.FieldName)); err != nil {
		return err
	}
	if d.Age, err = sh.p.askInt("Enter age: ", sh.age); err != nil {
		return err
	}
	if d.Email, err = sh.p.askUntil("Enter email: ", sh.field(schema.FieldEmail)); err != nil {
		return err
	}
	if d.Course, err = sh.p.askUntil("Enter course: ", sh.field(schema.FieldCourse)); err != nil {
		return err
	}

	r := sh.s.store.Add(d)
	slog.Info("student added", "id", r.ID)
	sh.s.out.Notice("Student added successfully! (id %d)", r.ID)
	return nil
}

var sortKeyChoices = map[string]string{"1": "id", "2": "name", "3": "age"}

func (sh *shell) sort() error {
	var key sorting.Key
	_, err := sh.p.askUntil("Sort by (1) ID (2) Name (3) Age: ", func(s string) error {
		s = strings.TrimSpace(s)
		if named, ok := sortKeyChoices[s]; ok {
			s = named
		}
		k, err := sorting.ParseKey(s)
		key = k
		return err
	})
	if err != nil {
		return err
	}

	dir := sorting.Ascending
	_, err = sh.p.askUntil("Order (a)scending or (d)escending [a]: ", func(s string) error {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "a":
			dir = sorting.Ascending
			return nil
		case "d":
			dir = sorting.Descending
			return nil
		}
		d, err := sorting.ParseDirection(s)
		dir = d
		return err
	})
	if err != nil {
		return err
	}

	if err := sorting.SortBy(sh.s.store, key, dir); err != nil {
		return err
	}
	sh.s.out.Notice("Students sorted by %s (%s).", key, dir)
	return nil
}

func (sh *shell) search() error {
	by, err := sh.p.askUntil("Search by (1) ID (2) Name (3) Course: ", func(s string) error {
		switch strings.TrimSpace(s) {
		case "1", "2", "3":
			return nil
		}
		return fmt.Errorf("please choose 1, 2 or 3")
	})
	if err != nil {
		return err
	}

	switch strings.TrimSpace(by) {
	case "1":
		id, err := sh.p.askInt("Enter student ID: ", nil)
		if err != nil {
			return err
		}
		sh.showLookup(query.LinearSearchByID(sh.s.store, id))
	case "2":
		fragment, err := sh.p.ask("Name contains: ")
		if err != nil {
			return err
		}
		writeRecords(sh.w, query.SearchByName(sh.s.store, fragment), false)
	case "3":
		fragment, err := sh.p.ask("Course contains: ")
		if err != nil {
			return err
		}
		writeRecords(sh.w, query.SearchByCourse(sh.s.store, fragment), false)
	}
	return nil
}

func (sh *shell) binarySearch() error {
	if sh.s.store.Len() == 0 {
		fmt.Fprintln(sh.w, "No students found.")
		return nil
	}

	if !query.IsSortedByID(sh.s.store) {
		yes, err := sh.p.confirm("Students are not sorted by ID. Sort by ID first?")
		if err != nil {
			return err
		}
		if !yes {
			id, err := sh.p.askInt("Enter student ID to search: ", nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(sh.w, "Using linear search.")
			sh.showLookup(query.LinearSearchByID(sh.s.store, id))
			return nil
		}
		if err := sorting.SortBy(sh.s.store, sorting.KeyID, sorting.Ascending); err != nil {
			return err
		}
		sh.s.out.Notice("Students sorted by ID.")
	}

	id, err := sh.p.askInt("Enter student ID to search: ", nil)
	if err != nil {
		return err
	}
	r, comparisons, err := query.BinarySearchByID(sh.s.store, id)
	sh.showLookup(r, err)
	fmt.Fprintf(sh.w, "Comparisons: %d\n", comparisons)
	return nil
}

func (sh *shell) showLookup(r record.Record, err error) {
	if err != nil {
		fmt.Fprintln(sh.w, "Student not found.")
		return
	}
	fmt.Fprintln(sh.w, "Student found:")
	writeRecords(sh.w, []record.Record{r}, false)
}

// lookup asks for an id and returns the matching record, or false after
// telling the user it does not exist.
func (sh *shell) lookup() (record.Record, bool, error) {
	id, err := sh.p.askInt("Enter student ID: ", nil)
	if err != nil {
		return record.Record{}, false, err
	}
	r, err := sh.s.store.Find(id)
	if err != nil {
		fmt.Fprintln(sh.w, "Student not found.")
		return record.Record{}, false, nil
	}
	return r, true, nil
}

func (sh *shell) update() error {
	current, ok, err := sh.lookup()
	if err != nil || !ok {
		return err
	}
	fmt.Fprintln(sh.w, compactLine(current))

	keepOr := func(check func(string) error) func(string) error {
		return func(s string) error {
			if s == "" {
				return nil
			}
			return check(s)
		}
	}

	var patch record.Patch

	name, err := sh.p.askUntil("New name (Enter to keep): ", keepOr(sh.field(schema.FieldName)))
	if err != nil {
		return err
	}
	if name != "" {
		patch.Name = record.Some(name)
	}

	age, err := sh.p.askUntil("New age (Enter to keep): ", keepOr(func(s string) error {
		n, err := parseInt(s)
		if err != nil {
			return err
		}
		return sh.age(n)
	}))
	if err != nil {
		return err
	}
	if age != "" {
		n, _ := parseInt(age)
		patch.Age = record.Some(n)
	}

	email, err := sh.p.askUntil("New email (Enter to keep): ", keepOr(sh.field(schema.FieldEmail)))
	if err != nil {
		return err
	}
	if email != "" {
		patch.Email = record.Some(email)
	}

	course, err := sh.p.askUntil("New course (Enter to keep): ", keepOr(sh.field(schema.FieldCourse)))
	if err != nil {
		return err
	}
	if course != "" {
		patch.Course = record.Some(course)
	}

	if patch.IsEmpty() {
		fmt.Fprintln(sh.w, "No changes.")
		return nil
	}
	if _, err := sh.s.store.Update(current.ID, patch); err != nil {
		return err
	}
	slog.Info("student updated", "id", current.ID)
	sh.s.out.Notice("Record updated successfully.")
	return nil
}

func (sh *shell) delete() error {
	current, ok, err := sh.lookup()
	if err != nil || !ok {
		return err
	}
	fmt.Fprintln(sh.w, compactLine(current))

	yes, err := sh.p.confirm("Delete this student?")
	if err != nil {
		return err
	}
	if _, err := sh.s.store.Delete(current.ID, yes); err != nil {
		if errors.Is(err, store.ErrNotConfirmed) {
			fmt.Fprintln(sh.w, "Deletion cancelled.")
			return nil
		}
		return err
	}
	slog.Info("student deleted", "id", current.ID)
	sh.s.out.Notice("Record deleted successfully.")
	return nil
}
