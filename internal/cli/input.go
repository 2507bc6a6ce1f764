package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/handling-analyzer/internal/common"
)

// StdinSource is the argument that selects standard input.
const StdinSource = "-"

// ReadInput returns the text of path, or of stdin when path is empty or "-".
// The second result names the source for reports.
func ReadInput(path string, stdin io.Reader) (string, string, error) {
	if path == "" || path == StdinSource {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-supplied input path
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", common.NewUserError(fmt.Sprintf("File not found: %s", path), err)
		}
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), path, nil
}
