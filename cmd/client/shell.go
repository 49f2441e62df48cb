package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dheerendra45/news-analyzer/internal/client/editor"
	"github.com/dheerendra45/news-analyzer/internal/client/listctl"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

const shellHelp = `Collections:  news | reports | cards
Browsing:     next | prev | page <n> | filter <key>=<value> | unfilter <key>
              search <text> | clear | refresh | show <id>
Back office:  create | edit <id> | delete <id> | toggle <id> | feature <id>
Other:        whoami | help | exit`

// collection is the list the shell is positioned on.
type collection interface {
	list(ctx context.Context, op func(context.Context, listOps) error) error
	show(ctx context.Context, id string) error
	create(ctx context.Context) error
	edit(ctx context.Context, id string) error
	remove(ctx context.Context, id string) error
	toggle(ctx context.Context, id string) error
}

// listOps are the controller operations the shell commands map to.
type listOps interface {
	Refresh(ctx context.Context)
	Next(ctx context.Context)
	Prev(ctx context.Context)
	SetPage(ctx context.Context, n int)
	SetFilter(ctx context.Context, key, value string)
	ClearAll(ctx context.Context)
	Search(ctx context.Context, text string)
}

// shellList binds one kit to a controller and an editor that refreshes it.
type shellList[T any] struct {
	a   *app
	k   kit[T]
	ctl *listctl.Controller[T]
	ed  *editor.Editor[T]
}

func newShellList[T any](a *app, k kit[T]) *shellList[T] {
	ctl := k.controller(a)
	return &shellList[T]{a: a, k: k, ctl: ctl, ed: k.editor(a, ctl)}
}

func (l *shellList[T]) Refresh(ctx context.Context)        { l.ctl.Refresh(ctx) }
func (l *shellList[T]) Next(ctx context.Context)           { l.ctl.Next(ctx) }
func (l *shellList[T]) Prev(ctx context.Context)           { l.ctl.Prev(ctx) }
func (l *shellList[T]) SetPage(ctx context.Context, n int) { l.ctl.SetPage(ctx, n) }
func (l *shellList[T]) ClearAll(ctx context.Context)       { l.ctl.ClearAll(ctx) }

func (l *shellList[T]) SetFilter(ctx context.Context, key, value string) {
	l.ctl.SetFilter(ctx, key, value)
}

func (l *shellList[T]) Search(ctx context.Context, text string) {
	l.ctl.SetSearchInput(text)
	l.ctl.SubmitSearch(ctx)
}

func (l *shellList[T]) list(ctx context.Context, op func(context.Context, listOps) error) error {
	if err := op(ctx, l); err != nil {
		return err
	}
	return l.k.printList(l.a, l.ctl.Snapshot())
}

func (l *shellList[T]) show(ctx context.Context, id string) error {
	return l.k.show(ctx, l.a, id)
}

func (l *shellList[T]) create(ctx context.Context) error {
	values, err := l.a.prompt.Fill(l.k.form, nil)
	if err != nil {
		return err
	}
	rec, err := l.ed.Submit(ctx, "", values)
	if err != nil {
		return failure(err, "Failed to save")
	}
	return l.written("Created", rec)
}

func (l *shellList[T]) edit(ctx context.Context, id string) error {
	rec, err := l.k.api.Get(ctx, id)
	if err != nil {
		return failure(err, "Failed to load "+l.k.name)
	}
	current, err := l.k.form.Values(rec)
	if err != nil {
		return err
	}
	values, err := l.a.prompt.Fill(l.k.form, current)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		l.a.println("Nothing changed")
		return nil
	}
	if rec, err = l.ed.Submit(ctx, id, values); err != nil {
		return failure(err, "Failed to save")
	}
	return l.written("Updated", rec)
}

func (l *shellList[T]) remove(ctx context.Context, id string) error {
	if err := l.ed.Delete(ctx, id); err != nil {
		return failure(err, "Failed to delete")
	}
	l.a.printf("Deleted %s %s\n", l.k.name, id)
	return l.k.printList(l.a, l.ctl.Snapshot())
}

func (l *shellList[T]) toggle(ctx context.Context, id string) error {
	rec, err := l.ed.ToggleStatus(ctx, id)
	if err != nil {
		return failure(err, "Failed to update status")
	}
	return l.written("Toggled", rec)
}

func (l *shellList[T]) written(verb string, rec *T) error {
	if err := printRecord(l.a, l.k, verb, rec); err != nil {
		return err
	}
	return l.k.printList(l.a, l.ctl.Snapshot())
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session over the collections and the back office",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.repl(cmd.Context())
		},
	}
}

// repl runs the interactive shell loop until exit or end of input.
func (a *app) repl(ctx context.Context) error {
	collections := map[string]collection{}
	open := func(name string) collection {
		if c, ok := collections[name]; ok {
			return c
		}
		var c collection
		switch name {
		case "news":
			c = newShellList(a, a.newsKit())
		case "reports":
			c = newShellList(a, a.reportsKit())
		case "cards":
			c = newShellList(a, a.cardsKit())
		}
		collections[name] = c
		return c
	}
	current, currentName := open("news"), "news"

	for {
		line, err := a.prompt.Line(fmt.Sprintf("wfi:%s> ", currentName))
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			a.println("Bye")
			return nil
		}
		if err := a.dispatch(ctx, args, current, &currentName, open); err != nil {
			a.println(a.styles.Error.Render(err.Error()))
		}
		current = open(currentName)
	}
}

func (a *app) dispatch(ctx context.Context, args []string, c collection, name *string, open func(string) collection) error {
	arg := func() (string, error) {
		if len(args) < 2 {
			return "", fmt.Errorf("usage: %s <id>", args[0])
		}
		return args[1], nil
	}
	admin := func() error {
		if !a.session.IsAdmin() {
			return errAdminRequired
		}
		return nil
	}

	switch args[0] {
	case "help":
		a.println(shellHelp)
	case "whoami":
		if u := a.session.User(); u != nil {
			a.printf("%s <%s> role=%s\n", u.Username, u.Email, u.Role)
		} else {
			a.println("Not logged in")
		}
	case "news", "reports", "cards":
		*name = args[0]
		return open(args[0]).list(ctx, func(ctx context.Context, l listOps) error {
			l.Refresh(ctx)
			return nil
		})
	case "refresh", "ls":
		return c.list(ctx, func(ctx context.Context, l listOps) error { l.Refresh(ctx); return nil })
	case "next":
		return c.list(ctx, func(ctx context.Context, l listOps) error { l.Next(ctx); return nil })
	case "prev":
		return c.list(ctx, func(ctx context.Context, l listOps) error { l.Prev(ctx); return nil })
	case "clear":
		return c.list(ctx, func(ctx context.Context, l listOps) error { l.ClearAll(ctx); return nil })
	case "page":
		return c.list(ctx, func(ctx context.Context, l listOps) error {
			s, err := arg()
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("page: %q is not a number", s)
			}
			l.SetPage(ctx, n)
			return nil
		})
	case "filter":
		return c.list(ctx, func(ctx context.Context, l listOps) error {
			s, err := arg()
			if err != nil {
				return err
			}
			key, value, ok := strings.Cut(s, "=")
			if !ok {
				return fmt.Errorf("usage: filter <key>=<value>")
			}
			l.SetFilter(ctx, key, value)
			return nil
		})
	case "unfilter":
		return c.list(ctx, func(ctx context.Context, l listOps) error {
			key, err := arg()
			if err != nil {
				return err
			}
			l.SetFilter(ctx, key, "")
			return nil
		})
	case "search":
		return c.list(ctx, func(ctx context.Context, l listOps) error {
			l.Search(ctx, strings.Join(args[1:], " "))
			return nil
		})
	case "show":
		id, err := arg()
		if err != nil {
			return err
		}
		return c.show(ctx, id)
	case "create":
		if err := admin(); err != nil {
			return err
		}
		return c.create(ctx)
	case "edit", "delete", "toggle":
		if err := admin(); err != nil {
			return err
		}
		id, err := arg()
		if err != nil {
			return err
		}
		switch args[0] {
		case "edit":
			return c.edit(ctx, id)
		case "delete":
			return c.remove(ctx, id)
		default:
			return c.toggle(ctx, id)
		}
	case "feature":
		if err := admin(); err != nil {
			return err
		}
		cards, ok := c.(*shellList[models.IntelligenceCard])
		if !ok {
			return errors.New("feature only applies to cards")
		}
		id, err := arg()
		if err != nil {
			return err
		}
		card, err := cards.ed.Do(ctx, "toggle-featured", a.cardsToggleFeatured(id))
		if err != nil {
			return failure(err, "Failed to update card")
		}
		return cards.written("Featured toggled on", card)
	default:
		a.println("Unknown command. Type 'help' for a list of commands.")
	}
	return nil
}
