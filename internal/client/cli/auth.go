package cli

import (
	"context"
	"fmt"

	"github.com/hongminglow/atithi-inn/internal/models/dto"
)

func (a *App) register(ctx context.Context, _ []string) error {
	username, err := prompt(a.in, a.out, "Username")
	if err != nil {
		return err
	}
	email, err := prompt(a.in, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.in, a.out, a.fd, "Password")
	if err != nil {
		return err
	}

	user, err := a.api.Register(ctx, dto.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Username)
	return nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	email, err := prompt(a.in, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.in, a.out, a.fd, "Password")
	if err != nil {
		return err
	}

	user, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", user.Username)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if a.api.State().UserSession() == nil && a.api.State().AdminSession() == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) me(ctx context.Context, _ []string) error {
	profile, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	switch {
	case profile.Admin != nil:
		fmt.Fprintf(a.out, "Admin %s <%s>\n", profile.Admin.Name, profile.Admin.Email)
	case profile.User != nil:
		role := "guest"
		if profile.User.IsAdmin {
			role = "admin"
		}
		fmt.Fprintf(a.out, "%s <%s> (%s, %d bookings)\n",
			profile.User.Username, profile.User.Email, role, len(profile.User.Bookings))
	}
	return nil
}

func (a *App) adminRegister(ctx context.Context, _ []string) error {
	var req dto.AdminRegisterRequest
	var err error
	if req.Name, err = prompt(a.in, a.out, "Name"); err != nil {
		return err
	}
	if req.Email, err = prompt(a.in, a.out, "Email"); err != nil {
		return err
	}
	if req.Password, err = promptPassword(a.in, a.out, a.fd, "Password"); err != nil {
		return err
	}
	if req.SecretKey, err = promptPassword(a.in, a.out, a.fd, "Personal secret key"); err != nil {
		return err
	}
	if req.AdminSecret, err = promptPassword(a.in, a.out, a.fd, "Registration secret"); err != nil {
		return err
	}

	admin, err := a.api.AdminRegister(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Admin account created for %s\n", admin.Name)
	return nil
}

func (a *App) adminLogin(ctx context.Context, _ []string) error {
	email, err := prompt(a.in, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.in, a.out, a.fd, "Password")
	if err != nil {
		return err
	}

	admin, err := a.api.AdminLogin(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as admin %s\n", admin.Name)
	return nil
}
