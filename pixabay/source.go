package pixabay

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/moddengine/pixabay-assetsource/assetsource"
)

const (
	Label       = "Pixabay"
	Description = "Files provided from pixabay.com"
)

var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{0,62}[a-z]$`)

// Options configure an AssetSource. Only APIKey is required, and it is
// checked when the first query runs.
type Options struct {
	APIKey            string
	DefaultSearchTerm string
	IconPath          string
	// CountAll overrides DefaultCountAll when positive.
	CountAll int

	RecordStore    RecordStore
	ImportedAssets assetsource.ImportedAssetFinder
	Publisher      assetsource.ResourcePublisher
	Logger         logrus.FieldLogger
	ClientOptions  []ClientOption
}

// AssetSource registers Pixabay with the CMS. It is configured once and
// never changes afterwards.
type AssetSource struct {
	identifier        string
	defaultSearchTerm string
	iconPath          string
	countAll          int

	client         *Client
	importedAssets assetsource.ImportedAssetFinder
	publisher      assetsource.ResourcePublisher

	repoOnce sync.Once
	repo     *AssetProxyRepository
}

var _ assetsource.Source = (*AssetSource)(nil)

func NewAssetSource(identifier string, opts Options) (*AssetSource, error) {
	if !identifierPattern.MatchString(identifier) {
		return nil, fmt.Errorf("%w: invalid asset source identifier %q", ErrConfiguration, identifier)
	}

	countAll := opts.CountAll
	if countAll <= 0 {
		countAll = DefaultCountAll
	}

	clientOpts := opts.ClientOptions
	if opts.Logger != nil {
		clientOpts = append([]ClientOption{WithLogger(opts.Logger)}, clientOpts...)
	}

	return &AssetSource{
		identifier:        identifier,
		defaultSearchTerm: strings.TrimSpace(opts.DefaultSearchTerm),
		iconPath:          strings.TrimSpace(opts.IconPath),
		countAll:          countAll,
		client:            NewClient(opts.APIKey, opts.RecordStore, clientOpts...),
		importedAssets:    opts.ImportedAssets,
		publisher:         opts.Publisher,
	}, nil
}

// NewAssetSourceFromOptions builds a source from the generic option map of
// the CMS settings (apiKey, defaultSearchTerm, icon, countAll). Values in
// the map override those in base.
func NewAssetSourceFromOptions(identifier string, options map[string]any, base Options) (*AssetSource, error) {
	opts := base
	for name, v := range options {
		switch name {
		case "apiKey":
			opts.APIKey = fmt.Sprint(v)
		case "defaultSearchTerm":
			opts.DefaultSearchTerm = fmt.Sprint(v)
		case "icon":
			opts.IconPath = fmt.Sprint(v)
		case "countAll":
			n, err := strconv.Atoi(fmt.Sprint(v))
			if err != nil {
				return nil, fmt.Errorf("%w: countAll: %w", ErrConfiguration, err)
			}
			opts.CountAll = n
		}
	}
	return NewAssetSource(identifier, opts)
}

func (s *AssetSource) Identifier() string { return s.identifier }

func (s *AssetSource) Label() string { return Label }

func (s *AssetSource) Description() string { return Description }

func (s *AssetSource) ReadOnly() bool { return true }

func (s *AssetSource) CopyrightNoticeTemplate() string { return "" }

func (s *AssetSource) DefaultSearchTerm() string { return s.defaultSearchTerm }

func (s *AssetSource) IconPath() string { return s.iconPath }

// IconURI resolves the icon path through the resource publisher. Without a
// publisher the path is returned as is.
func (s *AssetSource) IconURI() (string, error) {
	if s.publisher == nil || s.iconPath == "" {
		return s.iconPath, nil
	}
	return s.publisher.PublicResourceURI(s.iconPath)
}

func (s *AssetSource) Client() *Client { return s.client }

func (s *AssetSource) AssetProxyRepository() assetsource.Repository {
	return s.Repository()
}

// Repository is created on first use and shared afterwards.
func (s *AssetSource) Repository() *AssetProxyRepository {
	s.repoOnce.Do(func() {
		s.repo = NewAssetProxyRepository(s)
	})
	return s.repo
}
