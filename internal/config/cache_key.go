package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// PaperDraftKey returns the cache key holding a saved paper selection.
func (r *CacheKeyStruct) PaperDraftKey(draftID string) string {
	return fmt.Sprintf("paper:draft:%s", draftID)
}

var CacheKey = NewCacheKeyStruct()
