package cli

import (
	"context"
)

// loginView is the login form: email + password, then store the returned
// identity. Promotion to the private layout happens in the guard pass.
func (a *App) loginView(ctx context.Context) {
	email, err := promptLine(a.reader, a.out, "email")
	if err != nil {
		return
	}
	password, err := promptPassword(a.out, "password")
	if err != nil {
		a.notify(err.Error())
		return
	}
	if email == "" || password == "" {
		a.notify("all fields are required")
		return
	}

	user, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.notify(err.Error())
		return
	}

	if err := a.sess.Set(user); err != nil {
		a.notify("could not persist session: " + err.Error())
	}
}

// registerView is the registration form. Only non-empty checks happen
// client-side; the server owns validation. Registration does not log in.
func (a *App) registerView(ctx context.Context) {
	fullName, err := promptLine(a.reader, a.out, "full name")
	if err != nil {
		return
	}
	email, err := promptLine(a.reader, a.out, "email")
	if err != nil {
		return
	}
	password, err := promptPassword(a.out, "password")
	if err != nil {
		a.notify(err.Error())
		return
	}
	confirm, err := promptPassword(a.out, "confirm password")
	if err != nil {
		a.notify(err.Error())
		return
	}
	if fullName == "" || email == "" || password == "" || confirm == "" {
		a.notify("all fields are required")
		return
	}

	msg, err := a.api.Register(ctx, fullName, email, password, confirm)
	if err != nil {
		a.notify(err.Error())
		return
	}
	a.notify(msg)
}
