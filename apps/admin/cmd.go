package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/zenkai/taiji/core/billing"
	"github.com/zenkai/taiji/core/session"
	"github.com/zenkai/taiji/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db          *sql.DB
	usrRepo     user.Repository
	profileRepo billing.Repository
	sess        *session.Controller
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -username USERNAME -email EMAIL [-admin] - create or update a user; password prompted next")
	fmt.Println("  resetpassword -username USERNAME|EMAIL - reset user's password")
	fmt.Println("  grantpremium -username USERNAME|EMAIL - unlock all premium units for a user (admin session required)")
	fmt.Println("  revokepremium -username USERNAME|EMAIL - revoke a user's premium access (admin session required)")
	fmt.Println("  login -username USERNAME|EMAIL - sign in as an operator; password prompted next")
	fmt.Println("  logout - clear the operator session")
	fmt.Println("  whoami - show the signed-in operator")
	fmt.Println("  migrate COMMAND [args] - run database migrations (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Make the user an admin.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	grantPremiumCmd := flag.NewFlagSet("grantpremium", flag.ExitOnError)
	grantPremiumUname := grantPremiumCmd.String("username", "", "The user's username or email.")

	revokePremiumCmd := flag.NewFlagSet("revokepremium", flag.ExitOnError)
	revokePremiumUname := revokePremiumCmd.String("username", "", "The user's username or email.")

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginUname := loginCmd.String("username", "", "The operator's username or email. The password will be prompted next.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserUname, *addUserEmail, pwd, *addUserAdmin)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)
	case "grantpremium":
		if err := grantPremiumCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *grantPremiumUname == "" {
			grantPremiumCmd.Usage()
			return errHelp
		}
		if err := cli.requireAdmin(); err != nil {
			return err
		}
		return cli.setPremium(*grantPremiumUname, true)
	case "revokepremium":
		if err := revokePremiumCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *revokePremiumUname == "" {
			revokePremiumCmd.Usage()
			return errHelp
		}
		if err := cli.requireAdmin(); err != nil {
			return err
		}
		return cli.setPremium(*revokePremiumUname, false)
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginUname == "" {
			loginCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginUname, pwd)
	case "logout":
		return cli.logout()
	case "whoami":
		return cli.whoami()
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
