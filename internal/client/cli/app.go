// Package cli is the interactive terminal client. It is organized the way
// the web client it replaces was: a session store, two layouts (public and
// private) with route guards on every transition, and views that are direct
// form-to-request-to-store bindings.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/paulikeo/mercadito/internal/client/session"
	"github.com/paulikeo/mercadito/internal/models"
)

// Layout mirrors the public/private route groups of the web client.
type Layout int

const (
	LayoutPublic Layout = iota
	LayoutPrivate
)

// apiClient is the REST surface the views consume. Tests provide stubs.
type apiClient interface {
	Register(ctx context.Context, fullName, email, password, confirm string) (string, error)
	Login(ctx context.Context, email, password string) (session.User, error)
	VerifyToken(ctx context.Context, token string) error
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	CreateProduct(ctx context.Context, token, name string, price float64, stock int64) (models.Product, error)
	UpdateProduct(ctx context.Context, token string, id int64, name string, price float64, stock int64) error
	DeleteProduct(ctx context.Context, token string, id int64) error
}

// App wires the session store, the API client and the REPL together.
type App struct {
	api    apiClient
	sess   *session.Store
	reader *bufio.Reader
	out    io.Writer
	layout Layout
}

// NewApp creates the client application around a session store and API
// client.
func NewApp(client apiClient, sess *session.Store) *App {
	return &App{
		api:    client,
		sess:   sess,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		layout: LayoutPublic,
	}
}

// Run evaluates the initial guards and starts the REPL.
func (a *App) Run(ctx context.Context) {
	a.applyGuards(ctx)
	a.repl(ctx)
}

// applyGuards re-evaluates the current layout, exactly like the web
// client's guards firing on mount and on every identity change.
func (a *App) applyGuards(ctx context.Context) {
	switch a.layout {
	case LayoutPublic:
		if GuardPublic(ctx, a.sess, a.api) == GoPrivate {
			a.layout = LayoutPrivate
			a.notify(fmt.Sprintf("welcome back, %s", a.sess.User().FullName))
		}
	case LayoutPrivate:
		if GuardPrivate(a.sess) == GoPublic {
			a.layout = LayoutPublic
		}
	}
}

// notify prints a one-line transient notification, the toast equivalent.
// Errors never terminate the REPL.
func (a *App) notify(msg string) {
	fmt.Fprintln(a.out, "! "+msg)
}

func (a *App) status() string {
	if a.layout == LayoutPrivate {
		return a.sess.User().Email
	}
	return "anonymous"
}
