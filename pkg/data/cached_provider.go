package data

import (
	"path/filepath"
	"sync"

	"k8s.io/klog/v2"

	"github.com/ducminhle1904/evosvm/pkg/types"
)

// MemoryCache implements DataCache using in-memory storage
type MemoryCache struct {
	cache map[string]*types.Dataset
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string]*types.Dataset),
	}
}

// Get retrieves a copy of the cached dataset
func (c *MemoryCache) Get(key string) (*types.Dataset, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	dataset, exists := c.cache[key]
	if !exists {
		return nil, false
	}
	return types.NewDataset(dataset.Labels, dataset.Instances), true
}

// Set stores a copy of the dataset
func (c *MemoryCache) Set(key string, dataset *types.Dataset) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache[key] = types.NewDataset(dataset.Labels, dataset.Instances)
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string]*types.Dataset)
}

// Size returns the number of cached entries
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

// CachedProvider wraps another DataProvider with caching functionality.
// Grid search loads the same train and validation files once per cell.
type CachedProvider struct {
	provider DataProvider
	cache    DataCache
}

// NewCachedProvider creates a new cached data provider
func NewCachedProvider(provider DataProvider) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    NewMemoryCache(),
	}
}

// GetName returns the name of the underlying provider with cache indication
func (p *CachedProvider) GetName() string {
	return "Cached " + p.provider.GetName()
}

// LoadData loads data with caching
func (p *CachedProvider) LoadData(source string) (*types.Dataset, error) {
	if cached, exists := p.cache.Get(source); exists {
		return cached, nil
	}

	dataset, err := p.provider.LoadData(source)
	if err != nil {
		klog.ErrorS(err, "Failed to load dataset", "file", filepath.Base(source))
		return nil, err
	}

	p.cache.Set(source, dataset)
	klog.V(1).InfoS("Loaded and cached dataset", "file", filepath.Base(source), "instances", dataset.Len())
	return dataset, nil
}

// ValidateData validates data using the underlying provider
func (p *CachedProvider) ValidateData(dataset *types.Dataset) error {
	return p.provider.ValidateData(dataset)
}

// GetCacheSize returns the number of cached entries
func (p *CachedProvider) GetCacheSize() int {
	return p.cache.Size()
}
