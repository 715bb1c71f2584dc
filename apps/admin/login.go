package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zenkai/taiji/core/session"
	"github.com/zenkai/taiji/core/user"
)

var (
	errInvalidCredentials = errors.New("invalid credentials")
	errAdminRequired      = errors.New("an admin session is required; run: admin login -username USERNAME")
)

func (cli *commandLine) login(uname, pwd string) error {
	usr, err := cli.usrRepo.GetUser(context.Background(), user.GetFilter{UsernameOrEmail: []string{uname}})
	if err != nil {
		return err
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return errInvalidCredentials
	}
	if usr.IsActive != nil && !*usr.IsActive {
		return errInvalidCredentials
	}
	if err = cli.sess.SignIn(session.Data{
		UserID: usr.ID,
		Token:  uuid.New().String(),
		Email:  usr.Email,
	}); err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", usr.Email)
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.sess.SignOut(); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

func (cli *commandLine) whoami() error {
	sess := cli.sess.Current()
	if !sess.Authenticated {
		return session.ErrNotAuthenticated
	}
	fmt.Println(sess.Email)
	return nil
}

// requireAdmin guards commands that change billing state. The operator
// must have signed in as an active admin user.
func (cli *commandLine) requireAdmin() error {
	sess := cli.sess.Current()
	if !sess.Authenticated {
		return errAdminRequired
	}
	usr, err := cli.usrRepo.GetUser(context.Background(), user.GetFilter{ID: sess.UserID})
	if err != nil {
		return errAdminRequired
	}
	if usr.IsActive != nil && !*usr.IsActive {
		return errAdminRequired
	}
	if !usr.IsAdmin() {
		return errAdminRequired
	}
	return nil
}
