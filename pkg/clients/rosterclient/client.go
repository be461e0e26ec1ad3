package rosterclient

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Client reads the nurse roster from a YAML file
type Client struct {
	path string
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// NewClient creates a roster client for the given file
func NewClient(path string) *Client {
	return &Client{path: path}
}

// Path returns the roster file this client reads
func (c *Client) Path() string {
	return c.path
}

func (c *Client) readFile() ([]byte, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	return data, nil
}
