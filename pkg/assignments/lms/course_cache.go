package lms

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// CourseCacheInterface caches course listings for the settings UI so
// reopening the panel does not hit the LMS again. The sync pipeline never
// reads from it.
type CourseCacheInterface interface {
	Add(key string, courses []Course) error
	Get(key string) ([]Course, error)
	Invalidate(key string) error
}

// CourseCacheMemory is an in-memory LRU backed course cache
type CourseCacheMemory struct {
	Cache *lru.Cache
}

// NewCourseCache initializes a new CourseCacheMemory
func NewCourseCache() (*CourseCacheMemory, error) {
	cache, err := lru.New(16)
	if err != nil {
		return nil, err
	}

	return &CourseCacheMemory{Cache: cache}, nil
}

// Add puts a course listing into the cache
func (c *CourseCacheMemory) Add(key string, courses []Course) error {
	_ = c.Cache.Add(key, courses)
	return nil
}

// Get retrieves a course listing from the cache
func (c *CourseCacheMemory) Get(key string) ([]Course, error) {
	result, ok := c.Cache.Get(key)
	if !ok {
		return nil, fmt.Errorf("could not find key %s in course cache", key)
	}

	courses, ok := result.([]Course)
	if !ok {
		return nil, fmt.Errorf("cache entry was not a course listing")
	}

	return courses, nil
}

// Invalidate removes a course listing from the cache
func (c *CourseCacheMemory) Invalidate(key string) error {
	c.Cache.Remove(key)
	return nil
}
