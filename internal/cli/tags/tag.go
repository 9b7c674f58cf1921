package tags

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
)

type TagAddCmd struct {
	Name     string `arg:"" help:"Tag name."`
	Category string `short:"c" help:"Tag category (health|work|social|home|mind or custom)."`
}

func (c *TagAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)

	if existing, err := ctx.Store.GetTagByName(name); err == nil && existing.Active {
		return fmt.Errorf("an active tag named %q already exists", name)
	}

	tag := models.Tag{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  models.NormalizeCategory(c.Category),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := tag.Validate(); err != nil {
		return fmt.Errorf("invalid tag: %w", err)
	}

	if err := ctx.Store.AddTag(tag); err != nil {
		return err
	}

	fmt.Printf("Added tag: %s (ID: %s)\n", tag.Name, tag.ID)
	return nil
}

type TagListCmd struct {
	All     bool `help:"Include inactive tags."`
	ShowIDs bool `help:"Show tag IDs." name:"show-ids"`
}

func (c *TagListCmd) Run(ctx *cli.Context) error {
	tags, err := ctx.Store.GetAllTags(c.All)
	if err != nil {
		return fmt.Errorf("failed to get tags: %w", err)
	}
	if len(tags) == 0 {
		fmt.Println("No tags found")
		return nil
	}

	fmt.Println("Tags:")
	for _, tag := range tags {
		status := "active"
		if !tag.Active {
			status = "inactive"
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", tag.ID)
		}
		category := tag.Category
		if category == "" {
			category = "uncategorized"
		}
		fmt.Printf("  [%s] %s%s - %s\n", status, tag.Name, idStr, category)
	}
	return nil
}

type TagRenameCmd struct {
	Name    string `arg:"" help:"Current tag name."`
	NewName string `arg:"" help:"New tag name."`
}

func (c *TagRenameCmd) Run(ctx *cli.Context) error {
	tag, err := ctx.Store.GetTagByName(c.Name)
	if err != nil {
		return fmt.Errorf("tag %q not found", c.Name)
	}

	newName := strings.TrimSpace(c.NewName)
	if existing, err := ctx.Store.GetTagByName(newName); err == nil && existing.ID != tag.ID && existing.Active {
		return fmt.Errorf("an active tag named %q already exists", newName)
	}

	tag.Name = newName
	if err := tag.Validate(); err != nil {
		return fmt.Errorf("invalid tag: %w", err)
	}
	if err := ctx.Store.UpdateTag(tag); err != nil {
		return err
	}

	fmt.Printf("Renamed tag %q to %q\n", c.Name, newName)
	return nil
}

type TagDeactivateCmd struct {
	Name string `arg:"" help:"Tag name."`
}

func (c *TagDeactivateCmd) Run(ctx *cli.Context) error {
	tag, err := ctx.Store.GetTagByName(c.Name)
	if err != nil {
		return fmt.Errorf("tag %q not found", c.Name)
	}

	if err := ctx.Store.DeactivateTag(tag.ID); err != nil {
		return err
	}

	fmt.Printf("Deactivated tag: %s\n", tag.Name)
	fmt.Println("Existing events keep referencing it; it no longer appears in active listings.")
	return nil
}
