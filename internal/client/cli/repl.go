package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// repl is the command loop. The available commands depend on the current
// layout; guards re-run after every command that can change the session.
func (a *App) repl(ctx context.Context) {
	for {
		fmt.Fprintf(a.out, "mercadito [%s]> ", a.status())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(a.out, "bye")
			return
		}

		if a.layout == LayoutPublic {
			a.dispatchPublic(ctx, cmd, args)
		} else {
			a.dispatchPrivate(ctx, cmd, args)
		}
	}
}

func (a *App) dispatchPublic(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, "commands: register, login, list, show <id>, exit")
	case "register":
		a.registerView(ctx)
	case "login":
		a.loginView(ctx)
	case "l", "list":
		a.listView(ctx)
	case "show":
		a.showView(ctx, args)
	default:
		a.notify("unknown command: " + cmd)
	}
	// The public guard fires on identity changes (a successful login).
	a.applyGuards(ctx)
}

func (a *App) dispatchPrivate(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, "commands: list, show <id>, add, edit <id>, delete <id>, whoami, logout, exit")
	case "l", "list":
		a.listView(ctx)
	case "show":
		a.showView(ctx, args)
	case "add":
		a.addProductView(ctx)
	case "edit":
		a.editProductView(ctx, args)
	case "delete":
		a.deleteProductView(ctx, args)
	case "whoami":
		u := a.sess.User()
		fmt.Fprintf(a.out, "%s <%s> (id %d)\n", u.FullName, u.Email, u.ID)
	case "logout":
		a.sess.Clear()
		a.notify("logged out")
	default:
		a.notify("unknown command: " + cmd)
	}
	a.applyGuards(ctx)
}

// argID resolves an id from the command arguments, prompting when absent.
func (a *App) argID(args []string) (int64, bool) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		raw, err = promptLine(a.reader, a.out, "product id")
		if err != nil {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.notify("invalid product id")
		return 0, false
	}
	return id, true
}
