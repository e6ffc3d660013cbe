package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gitlab.com/dirk.krummacker/contact-book/pkg/client"
	"gitlab.com/dirk.krummacker/contact-book/pkg/model"
)

// listFlags holds the parsed flags for the list command. Search and sort
// are applied client-side on the fetched collection.
type listFlags struct {
	search     string
	orderby    string
	descending bool
}

// contactFlags holds the business-field flags shared by create and update.
type contactFlags struct {
	firstName       string
	lastName        string
	workplace       string
	email           string
	knownFrom       string
	comments        string
	lastContactDate string
}

func main() {
	var serverURL string

	root := &cobra.Command{
		Use:   "contactctl",
		Short: "Manage contacts in the contact book service",
		Long:  "contactctl talks to the contact book REST API and lists, shows, creates, updates and deletes contacts.",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of the contact book service")

	var lf listFlags
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(client.New(serverURL), lf)
		},
	}
	listCmd.Flags().StringVar(&lf.search, "search", "", "Case-insensitive substring filter across all contact fields")
	listCmd.Flags().StringVar(&lf.orderby, "orderby", "", "Sort key: "+strings.Join(client.SortKeys, ", "))
	listCmd.Flags().BoolVar(&lf.descending, "descending", false, "Reverse the sort order")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			contact, err := client.New(serverURL).GetContactById(id)
			if err != nil {
				return err
			}
			return printJSON(contact)
		},
	}

	var cf contactFlags
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := cf.toInput(cmd)
			if err != nil {
				return err
			}
			contact, err := client.New(serverURL).CreateContact(in)
			if err != nil {
				return err
			}
			return printJSON(contact)
		},
	}
	cf.register(createCmd)

	var uf contactFlags
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := uf.toInput(cmd)
			if err != nil {
				return err
			}
			contact, err := client.New(serverURL).UpdateContact(id, in)
			if err != nil {
				return err
			}
			return printJSON(contact)
		},
	}
	uf.register(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			message, err := client.New(serverURL).DeleteContact(id)
			if err != nil {
				return err
			}
			fmt.Println(message)
			return nil
		},
	}

	root.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runList(c *client.Client, flags listFlags) error {
	contacts, err := c.GetAllContacts()
	if err != nil {
		return err
	}
	contacts = client.Search(contacts, flags.search)
	if flags.orderby != "" {
		contacts, err = client.SortBy(contacts, flags.orderby, !flags.descending)
		if err != nil {
			return err
		}
	}
	return printJSON(contacts)
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&f.workplace, "workplace", "", "Workplace")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.knownFrom, "known-from", "", "How the contact is known")
	cmd.Flags().StringVar(&f.comments, "comments", "", "Free-text notes")
	cmd.Flags().StringVar(&f.lastContactDate, "last-contact-date", "", "Last interaction, RFC 3339 (e.g. 2024-01-01T00:00:00Z)")
}

// toInput converts the flags into a request payload. Only flags the user
// actually set become part of the payload, so an update touches nothing
// else.
func (f *contactFlags) toInput(cmd *cobra.Command) (model.ContactInput, error) {
	var in model.ContactInput
	if cmd.Flags().Changed("first-name") {
		in.FirstName = &f.firstName
	}
	if cmd.Flags().Changed("last-name") {
		in.LastName = &f.lastName
	}
	if cmd.Flags().Changed("workplace") {
		in.Workplace = &f.workplace
	}
	if cmd.Flags().Changed("email") {
		in.Email = &f.email
	}
	if cmd.Flags().Changed("known-from") {
		in.KnownFrom = &f.knownFrom
	}
	if cmd.Flags().Changed("comments") {
		in.Comments = &f.comments
	}
	if cmd.Flags().Changed("last-contact-date") {
		parsed, err := time.Parse(time.RFC3339, f.lastContactDate)
		if err != nil {
			return in, fmt.Errorf("invalid --last-contact-date: %w", err)
		}
		in.LastContactDate = &parsed
	}
	return in, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("contact id must be a number, got %q", arg)
	}
	return id, nil
}

func printJSON(v interface{}) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
