package cli

import (
	"fmt"
	"os"

	"github.com/promptdeck/promptdeck/pkg/files"
	"github.com/promptdeck/promptdeck/pkg/models"
	"github.com/promptdeck/promptdeck/pkg/pages"
	"github.com/promptdeck/promptdeck/pkg/tags"
)

// CommandContext manages project validation and common command state
type CommandContext struct {
	Settings  *models.Settings
	validated bool
	manager   *pages.Manager
	store     *tags.Store
}

// NewCommandContext creates a new command context
func NewCommandContext() *CommandContext {
	return &CommandContext{}
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}
	if !files.ProjectExists() {
		return fmt.Errorf("no %s directory found. Run 'promptdeck init' first", files.DeckDir)
	}
	c.validated = true
	return nil
}

// LoadSettings reads settings, caching them for the command's lifetime
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}
	settings, err := files.ReadSettings()
	if err != nil {
		return nil, err
	}
	c.Settings = settings
	return settings, nil
}

// Store returns the shared tag store
func (c *CommandContext) Store() *tags.Store {
	if c.store == nil {
		c.store = tags.NewStore(files.TagsPath())
	}
	return c.store
}

// Manager returns the page manager, loading the registry on first use
func (c *CommandContext) Manager() (*pages.Manager, error) {
	if err := c.ValidateProject(); err != nil {
		return nil, err
	}
	if c.manager == nil {
		c.manager = pages.NewManager(files.PagesPath(), c.Store())
	}
	return c.manager, nil
}

// RequirePage resolves a page by id with a friendly error
func (c *CommandContext) RequirePage(id int) (*pages.Page, error) {
	m, err := c.Manager()
	if err != nil {
		return nil, err
	}
	page, ok := m.Page(id)
	if !ok {
		return nil, fmt.Errorf("page %d not found", id)
	}
	return page, nil
}

// Exit prints an error and terminates with a non-zero status
func Exit(err error) {
	PrintError("%v", err)
	os.Exit(1)
}
