package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/moneyflow/internal/cli"
	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/model"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage income and expense categories",
		Long:  `List, add, update, and delete the categories transactions and budgets refer to.`,
	}

	cmd.AddCommand(listCategoriesCmd(a))
	cmd.AddCommand(addCategoryCmd(a))
	cmd.AddCommand(updateCategoryCmd(a))
	cmd.AddCommand(deleteCategoryCmd(a))

	return cmd
}

func listCategoriesCmd(a *app) *cobra.Command {
	var entryType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			categories := l.Categories()
			if entryType != "" {
				t, err := model.ParseEntryType(entryType)
				if err != nil {
					return common.NewUserError("Invalid --type", err)
				}
				categories = model.CategoriesByType(categories, t)
			}

			if len(categories) == 0 {
				printInfo(cmd, "No categories found. Use 'moneyflow categories add' to create one.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.CategoryTable(categories))
			return nil
		},
	}

	cmd.Flags().StringVar(&entryType, "type", "", "Only show income or expense categories")

	return cmd
}

func addCategoryCmd(a *app) *cobra.Command {
	var (
		entryType string
		color     string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseEntryType(entryType)
			if err != nil {
				return common.NewUserError("Invalid --type", err)
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			category, err := l.AddCategory(cmd.Context(), model.Category{
				Name:  args[0],
				Color: color,
				Type:  t,
			})
			if err != nil {
				return mutationError("add category", err)
			}

			printSuccess(cmd, "Created %s category %q (ID: %s)", category.Type, category.Name, category.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&entryType, "type", string(model.TypeExpense), "Category type (income or expense)")
	cmd.Flags().StringVar(&color, "color", model.DefaultCategoryColor, "Display color as #RRGGBB")

	return cmd
}

func updateCategoryCmd(a *app) *cobra.Command {
	var (
		name      string
		color     string
		entryType string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Long:  `Update the name, color, or type of an existing category.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.CategoryPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if cmd.Flags().Changed("type") {
				t, err := model.ParseEntryType(entryType)
				if err != nil {
					return common.NewUserError("Invalid --type", err)
				}
				patch.Type = &t
			}
			if patch == (model.CategoryPatch{}) {
				return common.NewUserError("Specify --name, --color or --type to update", common.ErrValidation)
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			category, err := l.UpdateCategory(cmd.Context(), args[0], patch)
			if err != nil {
				return mutationError("update category", err)
			}

			printSuccess(cmd, "Updated category %q", category.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New category name")
	cmd.Flags().StringVar(&color, "color", "", "New display color")
	cmd.Flags().StringVar(&entryType, "type", "", "New category type")

	return cmd
}

func deleteCategoryCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category. Transactions and budgets that use it are kept and
show the category as deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			ok, err := confirm(cmd, force, fmt.Sprintf("Delete category %s?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				printInfo(cmd, "Deletion cancelled.")
				return nil
			}

			if err := l.RemoveCategory(cmd.Context(), args[0]); err != nil {
				return mutationError("delete category", err)
			}

			printSuccess(cmd, "Deleted category %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
