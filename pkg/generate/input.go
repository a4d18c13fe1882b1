package generate

import (
	"fmt"
	"strings"

	"github.com/MacroPower/abischema/pkg/abierrors"
)

// Input is a resolved command argument: either a local ABI file or a
// contract ID.
type Input struct {
	Path       string
	ContractID string
}

// IsFile reports whether the input names a local file.
func (i Input) IsFile() bool {
	return i.Path != ""
}

func (i Input) String() string {
	if i.IsFile() {
		return i.Path
	}

	return i.ContractID
}

// ResolveInput classifies arg. Arguments starting with `./` or `../` are
// file paths; anything else is a contract ID.
func ResolveInput(arg string) (Input, error) {
	if strings.TrimSpace(arg) == "" {
		return Input{}, fmt.Errorf("%w: empty input", abierrors.ErrInvalidArguments)
	}

	if strings.HasPrefix(arg, "./") || strings.HasPrefix(arg, "../") {
		return Input{Path: arg}, nil
	}

	return Input{ContractID: arg}, nil
}
