package pixabay

import (
	"errors"
	"fmt"

	"github.com/moddengine/pixabay-assetsource/assetsource"
)

var (
	ErrConfiguration = errors.New("pixabay: configuration error")
	ErrRemoteAPI     = fmt.Errorf("pixabay: remote api request failed: %w", assetsource.ErrConnection)
	ErrTransfer      = fmt.Errorf("pixabay: transfer failed: %w", assetsource.ErrConnection)
	ErrNotFound      = fmt.Errorf("pixabay: %w", assetsource.ErrAssetNotFound)
	ErrParse         = errors.New("pixabay: malformed response")
)
