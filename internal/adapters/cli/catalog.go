package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	catalogCommands "github.com/KungRaseri/forgecraft/internal/application/catalog/commands"
	catalogQueries "github.com/KungRaseri/forgecraft/internal/application/catalog/queries"
	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
	"github.com/KungRaseri/forgecraft/internal/infrastructure/catalogfile"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the recipe catalog",
		Long:  `Manage recipe definitions: load, list, search, unlock and discover recipes.`,
	}

	cmd.AddCommand(newCatalogLoadCommand())
	cmd.AddCommand(newCatalogAddCommand())
	cmd.AddCommand(newCatalogRemoveCommand())
	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogSearchCommand())
	cmd.AddCommand(newCatalogGetCommand())
	cmd.AddCommand(newCatalogUnlockCommand())
	cmd.AddCommand(newCatalogLockCommand())
	cmd.AddCommand(newCatalogDiscoverCommand())

	return cmd
}

// newCatalogLoadCommand imports recipes from a YAML file
func newCatalogLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Load recipe definitions from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := catalogfile.Load(args[0])
			if err != nil {
				return err
			}

			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			for _, entry := range loaded {
				_, err := container.send(&catalogCommands.AddRecipeCommand{
					Recipe:        entry.Recipe,
					StartUnlocked: entry.Unlocked,
				})
				if err != nil {
					return fmt.Errorf("failed to add recipe %s: %w", entry.Recipe.ID(), err)
				}
			}

			fmt.Printf("Loaded %d recipes from %s\n", len(loaded), args[0])
			return nil
		},
	}
}

// newCatalogAddCommand registers a single recipe from flags
func newCatalogAddCommand() *cobra.Command {
	var (
		name         string
		description  string
		category     string
		craftingTime time.Duration
		resultItem   string
		resultName   string
		qualityCap   string
		requirements []string
		unlocked     bool
	)

	cmd := &cobra.Command{
		Use:   "add <recipe-id>",
		Short: "Register a recipe definition",
		Long: `Register a recipe definition. Requirements use the form
CATEGORY:QUALITY:QUANTITY or CATEGORY:QUALITY:QUANTITY:MATERIAL-ID.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipeCategory, err := recipe.ParseCategory(category)
			if err != nil {
				return err
			}

			capQuality := material.QualityLegendary
			if qualityCap != "" {
				capQuality, err = material.ParseQuality(qualityCap)
				if err != nil {
					return fmt.Errorf("invalid quality cap: %w", err)
				}
			}

			reqs, err := parseRequirements(requirements)
			if err != nil {
				return err
			}

			if resultName == "" {
				resultName = name
			}

			rcp, err := recipe.NewRecipe(args[0], name, description, recipeCategory, reqs,
				recipe.Result{ItemID: resultItem, Name: resultName, QualityCap: capQuality},
				craftingTime)
			if err != nil {
				return err
			}

			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			if _, err := container.send(&catalogCommands.AddRecipeCommand{
				Recipe:        rcp,
				StartUnlocked: unlocked,
			}); err != nil {
				return err
			}

			fmt.Printf("Added recipe %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Recipe display name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Recipe description")
	cmd.Flags().StringVar(&category, "category", "", "Recipe category: WEAPON, ARMOR, TOOL, CONSUMABLE, TRINKET (required)")
	cmd.Flags().DurationVar(&craftingTime, "crafting-time", 0, "Nominal crafting duration, e.g. 45s (required)")
	cmd.Flags().StringVar(&resultItem, "result-item", "", "Produced item ID (required)")
	cmd.Flags().StringVar(&resultName, "result-name", "", "Produced item name (defaults to recipe name)")
	cmd.Flags().StringVar(&qualityCap, "quality-cap", "", "Maximum result quality (defaults to LEGENDARY)")
	cmd.Flags().StringArrayVar(&requirements, "requirement", nil, "Material requirement, repeatable")
	cmd.Flags().BoolVar(&unlocked, "unlocked", false, "Start the recipe unlocked")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("crafting-time")
	_ = cmd.MarkFlagRequired("result-item")

	return cmd
}

// newCatalogRemoveCommand deletes a recipe definition
func newCatalogRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <recipe-id>",
		Short: "Remove a recipe definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&catalogCommands.RemoveRecipeCommand{RecipeID: args[0]})
			if err != nil {
				return err
			}

			if resp.(*catalogCommands.RemoveRecipeResponse).Removed {
				fmt.Printf("Removed recipe %s\n", args[0])
			} else {
				fmt.Printf("Recipe %s not found\n", args[0])
			}
			return nil
		},
	}
}

// newCatalogListCommand lists recipes
func newCatalogListCommand() *cobra.Command {
	var (
		includeLocked bool
		category      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogSearch("", includeLocked, category)
		},
	}

	cmd.Flags().BoolVar(&includeLocked, "include-locked", false, "Include locked recipes")
	cmd.Flags().StringVar(&category, "category", "", "Filter by recipe category")

	return cmd
}

// newCatalogSearchCommand searches recipes by term
func newCatalogSearchCommand() *cobra.Command {
	var (
		includeLocked bool
		category      string
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search recipes by name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogSearch(args[0], includeLocked, category)
		},
	}

	cmd.Flags().BoolVar(&includeLocked, "include-locked", false, "Include locked recipes")
	cmd.Flags().StringVar(&category, "category", "", "Filter by recipe category")

	return cmd
}

func runCatalogSearch(term string, includeLocked bool, category string) error {
	var recipeCategory recipe.Category
	if category != "" {
		parsed, err := recipe.ParseCategory(category)
		if err != nil {
			return err
		}
		recipeCategory = parsed
	}

	container, err := newAppContainer()
	if err != nil {
		return err
	}
	defer container.Close()

	resp, err := container.send(&catalogQueries.SearchRecipesQuery{
		Term:          term,
		IncludeLocked: includeLocked,
		Category:      recipeCategory,
	})
	if err != nil {
		return err
	}

	recipes := resp.(*catalogQueries.SearchRecipesResponse).Recipes
	if len(recipes) == 0 {
		fmt.Println("No recipes found")
		return nil
	}

	fmt.Printf("%-25s %-25s %-12s %-10s %-10s %s\n",
		"RECIPE ID", "NAME", "CATEGORY", "TIME", "UNLOCKED", "BASE RATE")
	fmt.Println(strings.Repeat("─", 96))

	for _, rcp := range recipes {
		fmt.Printf("%-25s %-25s %-12s %-10s %-10t %.0f%%\n",
			truncate(rcp.ID(), 25),
			truncate(rcp.Name(), 25),
			rcp.Category(),
			formatDuration(rcp.CraftingTime()),
			container.catalog.IsRecipeUnlocked(rcp.ID()),
			rcp.BaseSuccessRate(),
		)
	}

	fmt.Printf("\nTotal: %d recipes\n", len(recipes))
	return nil
}

// newCatalogGetCommand shows one recipe in detail
func newCatalogGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <recipe-id>",
		Short: "Show a recipe definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&catalogQueries.GetRecipeQuery{RecipeID: args[0]})
			if err != nil {
				return err
			}

			result := resp.(*catalogQueries.GetRecipeResponse)
			if !result.Found {
				fmt.Printf("Recipe %s not found\n", args[0])
				return nil
			}

			rcp := result.Recipe
			fmt.Printf("Recipe:        %s (%s)\n", rcp.Name(), rcp.ID())
			if rcp.Description() != "" {
				fmt.Printf("Description:   %s\n", rcp.Description())
			}
			fmt.Printf("Category:      %s\n", rcp.Category())
			fmt.Printf("Crafting time: %s\n", formatDuration(rcp.CraftingTime()))
			fmt.Printf("Unlocked:      %t\n", result.Unlocked)
			fmt.Printf("Base rate:     %.1f%%\n", rcp.BaseSuccessRate())
			fmt.Printf("Produces:      %s (%s), quality cap %s\n",
				rcp.Result().Name, rcp.Result().ItemID, rcp.Result().QualityCap)
			fmt.Println("Requirements:")
			for _, req := range rcp.Requirements() {
				fmt.Printf("  - %s\n", req)
			}
			return nil
		},
	}
}

// newCatalogUnlockCommand makes a recipe craftable
func newCatalogUnlockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <recipe-id>",
		Short: "Unlock a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&catalogCommands.UnlockRecipeCommand{RecipeID: args[0]})
			if err != nil {
				return err
			}

			if resp.(*catalogCommands.UnlockRecipeResponse).Changed {
				fmt.Printf("Unlocked recipe %s\n", args[0])
			} else {
				fmt.Printf("Recipe %s was already unlocked (or does not exist)\n", args[0])
			}
			return nil
		},
	}
}

// newCatalogLockCommand makes a recipe uncraftable again
func newCatalogLockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lock <recipe-id>",
		Short: "Lock a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&catalogCommands.LockRecipeCommand{RecipeID: args[0]})
			if err != nil {
				return err
			}

			if resp.(*catalogCommands.LockRecipeResponse).Changed {
				fmt.Printf("Locked recipe %s\n", args[0])
			} else {
				fmt.Printf("Recipe %s was already locked (or does not exist)\n", args[0])
			}
			return nil
		},
	}
}

// newCatalogDiscoverCommand unlocks recipes satisfiable by given materials
func newCatalogDiscoverCommand() *cobra.Command {
	var materials []string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Unlock locked recipes satisfiable by the given materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			instances, err := parseMaterials(materials)
			if err != nil {
				return err
			}

			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&catalogCommands.DiscoverRecipesCommand{
				AvailableMaterials: instances,
			})
			if err != nil {
				return err
			}

			discovered := resp.(*catalogCommands.DiscoverRecipesResponse).Discovered
			if len(discovered) == 0 {
				fmt.Println("No new recipes discovered")
				return nil
			}

			for _, rcp := range discovered {
				fmt.Printf("Discovered %s (%s)\n", rcp.Name(), rcp.ID())
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&materials, "material", nil,
		"Available material as CATEGORY:QUALITY[:ID], repeatable")
	_ = cmd.MarkFlagRequired("material")

	return cmd
}

// parseRequirements converts --requirement flag values into requirements.
// Each value is CATEGORY:QUALITY:QUANTITY or CATEGORY:QUALITY:QUANTITY:ID.
func parseRequirements(values []string) ([]material.Requirement, error) {
	reqs := make([]material.Requirement, 0, len(values))

	for _, value := range values {
		parts := strings.SplitN(value, ":", 4)
		if len(parts) < 3 {
			return nil, fmt.Errorf("invalid requirement %q: expected CATEGORY:QUALITY:QUANTITY[:ID]", value)
		}

		category, err := material.ParseCategory(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid requirement %q: %w", value, err)
		}

		quality, err := material.ParseQuality(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid requirement %q: %w", value, err)
		}

		quantity, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid requirement %q: quantity must be an integer", value)
		}

		var req material.Requirement
		if len(parts) == 4 {
			req, err = material.NewSpecificRequirement(category, quality, quantity, parts[3])
		} else {
			req, err = material.NewRequirement(category, quality, quantity)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid requirement %q: %w", value, err)
		}

		reqs = append(reqs, req)
	}

	return reqs, nil
}
