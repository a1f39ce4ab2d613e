package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/model"
	"github.com/SergeyParamoshkin/admin/internal/position"
)

func newPositionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "positions",
		Aliases: []string{"position"},
		Short:   "Manage job positions",
	}

	cmd.AddCommand(
		a.positionsListCmd(),
		a.positionGetCmd(),
		a.positionDeleteCmd(),
		a.positionCreateCmd(),
		a.positionUpdateCmd(),
	)

	return cmd
}

func (a *app) positionsListCmd() *cobra.Command {
	var department, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List positions of a department, or the ones matching a search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := a.backend()
			if err != nil {
				return err
			}

			var found []client.ServerPosition
			if q := strings.TrimSpace(search); q != "" {
				found, err = api.SearchPositions(cmd.Context(), q)
				if err != nil {
					return failed(position.MsgSearchFailed, err)
				}
			} else {
				found, err = api.ListPositions(cmd.Context(), department)
				if err != nil {
					return failed(position.MsgListFailed, err)
				}
			}

			rows := make([][]string, 0, len(found))
			for _, p := range model.PositionsFromServer(found) {
				rows = append(rows, []string{p.ID, p.Title, p.Department, p.Type, p.Location, p.Experience})
			}

			if err = a.printer.Table([]string{"ID", "Title", "Department", "Type", "Location", "Experience"}, rows); err != nil {
				return err
			}
			a.printer.Info("%d positions", len(rows))

			return nil
		},
	}

	cmd.Flags().StringVar(&department, "department", "", "only this department ("+strings.Join(model.Departments, ", ")+")")
	cmd.Flags().StringVar(&search, "search", "", "search term, overrides --department")

	return cmd
}

func (a *app) positionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.backend()
			if err != nil {
				return err
			}

			found, err := api.GetPosition(cmd.Context(), args[0])
			if err != nil {
				return failed(position.MsgLoadFailed, err)
			}

			pos := model.PositionFromServer(*found)
			p := a.printer
			p.Field("Title", pos.Title)
			p.Field("Department", pos.Department)
			p.Field("Employment type", pos.Type)
			p.Field("Location", pos.Location)
			p.Field("Experience", pos.Experience)
			p.Field("Description", pos.Description)
			p.Field("Requirements", "")
			for _, req := range pos.Requirements {
				p.Info("  - %s", req)
			}

			return nil
		},
	}
}

func (a *app) positionDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.backend()
			if err != nil {
				return err
			}

			id := args[0]
			if !yes {
				found, err := api.GetPosition(cmd.Context(), id)
				if err != nil {
					return failed(position.MsgLoadFailed, err)
				}

				ok, err := confirm(cmd, position.ConfirmQuestion(found.Title))
				if err != nil {
					return err
				}
				if !ok {
					a.printer.Info("cancelled")

					return nil
				}
			}

			if err = api.DeletePosition(cmd.Context(), id); err != nil {
				return failed(position.MsgDeleteFailed, err)
			}

			a.printer.Success("deleted %s", id)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (a *app) positionCreateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create -f <file>",
		Short: "Create a position from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := a.backend()
			if err != nil {
				return err
			}

			form, err := a.positionForm(cmd, file)
			if err != nil {
				return err
			}

			created, err := api.CreatePosition(cmd.Context(), form.CreateRequest())
			if err != nil {
				return failed(position.MsgSaveFailed, err)
			}

			a.printer.Success("created %s (%s)", created.Title, created.ID)

			return nil
		},
	}

	fileFlag(cmd, &file)

	return cmd
}

func (a *app) positionUpdateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update <id> -f <file>",
		Short: "Replace a position's fields from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.backend()
			if err != nil {
				return err
			}

			form, err := a.positionForm(cmd, file)
			if err != nil {
				return err
			}

			if _, err = api.UpdatePosition(cmd.Context(), args[0], form.UpdateRequest()); err != nil {
				return failed(position.MsgSaveFailed, err)
			}

			a.printer.Success("updated %s", args[0])

			return nil
		},
	}

	fileFlag(cmd, &file)

	return cmd
}

// positionForm reads and validates a position file. Requirements are added
// one by one, so blanks and repeats are dropped as in the panel.
func (a *app) positionForm(cmd *cobra.Command, file string) (position.Form, error) {
	var form position.Form
	if err := readYAML(cmd, file, &form); err != nil {
		return form, err
	}

	requirements := model.Requirements{}
	for _, req := range form.Requirements {
		requirements.Add(req)
	}
	form.Requirements = requirements

	if errs := a.validator.Validate(form); errs != nil {
		a.printer.ValidationErrors(errs)

		return form, fmt.Errorf("%s: %w", file, errs)
	}

	return form, nil
}
