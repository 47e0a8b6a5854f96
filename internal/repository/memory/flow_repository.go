package memory

import (
	"strconv"
	"time"

	"subman-bot-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// FlowRepository keeps per-user conversation state in process memory.
// Abandoned flows fall out of the cache on TTL instead of accumulating.
// Running more than one replica requires swapping this for a shared store
// behind the same methods.
type FlowRepository struct {
	cache *cache.Cache
}

func NewFlowRepository() *FlowRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &FlowRepository{
		cache: c,
	}
}

func (r *FlowRepository) Save(state *entity.FlowState) {
	state.UpdatedAt = time.Now()
	r.cache.Set(key(state.UserId), state, cache.DefaultExpiration)
}

func (r *FlowRepository) Get(userId int64) (*entity.FlowState, bool) {
	if x, found := r.cache.Get(key(userId)); found {
		return x.(*entity.FlowState), true
	}
	return nil, false
}

func (r *FlowRepository) Delete(userId int64) {
	r.cache.Delete(key(userId))
}

func key(userId int64) string {
	return strconv.FormatInt(userId, 10)
}
