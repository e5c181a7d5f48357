package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calric/gameshelf/internal/account"
	"github.com/calric/gameshelf/internal/store"
)

var accountFlags struct {
	email    string
	password string
	current  string
	next     string
}

func openAccount() (*account.Manager, *store.Store, error) {
	key, err := cfg.EncryptionKey()
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	m, err := account.New(st.DB, key)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return m, st, nil
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the local account",
}

var accountInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the local account",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, st, err := openAccount()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := m.Create(accountFlags.email, accountFlags.password); err != nil {
			return err
		}
		fmt.Println("Account created.")
		return nil
	},
}

var accountEmailCmd = &cobra.Command{
	Use:   "email",
	Short: "Show the stored email address",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, st, err := openAccount()
		if err != nil {
			return err
		}
		defer st.Close()

		email, err := m.Email()
		if err != nil {
			return err
		}
		fmt.Println(email)
		return nil
	},
}

var accountSetEmailCmd = &cobra.Command{
	Use:   "set-email",
	Short: "Change the stored email address",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, st, err := openAccount()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := m.SetEmail(accountFlags.password, accountFlags.email); err != nil {
			return err
		}
		fmt.Println("Email updated.")
		return nil
	},
}

var accountSetPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Change the account password",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, st, err := openAccount()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := m.SetPassword(accountFlags.current, accountFlags.next); err != nil {
			return err
		}
		fmt.Println("Password updated.")
		return nil
	},
}

func init() {
	accountInitCmd.Flags().StringVar(&accountFlags.email, "email", "", "email address")
	accountInitCmd.Flags().StringVar(&accountFlags.password, "password", "", "password")
	accountInitCmd.MarkFlagRequired("email")
	accountInitCmd.MarkFlagRequired("password")

	accountSetEmailCmd.Flags().StringVar(&accountFlags.email, "email", "", "new email address")
	accountSetEmailCmd.Flags().StringVar(&accountFlags.password, "password", "", "current password")
	accountSetEmailCmd.MarkFlagRequired("email")
	accountSetEmailCmd.MarkFlagRequired("password")

	accountSetPasswordCmd.Flags().StringVar(&accountFlags.current, "current", "", "current password")
	accountSetPasswordCmd.Flags().StringVar(&accountFlags.next, "new", "", "new password")
	accountSetPasswordCmd.MarkFlagRequired("current")
	accountSetPasswordCmd.MarkFlagRequired("new")

	accountCmd.AddCommand(accountInitCmd, accountEmailCmd, accountSetEmailCmd, accountSetPasswordCmd)
	rootCmd.AddCommand(accountCmd)
}
