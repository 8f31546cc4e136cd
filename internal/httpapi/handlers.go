package httpapi

import (
	"net/http"
	"time"

	"github.com/alexdb/alexdb/internal/store"
	"github.com/alexdb/alexdb/pkg/jsonx"
	"github.com/gin-gonic/gin"
)

func handleStats(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Stats.Snapshot())
	}
}

func handleListValues(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q QueryParams
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}

		in := store.ListInput{
			Direction: parseDirection(q.Direction),
			Sort:      parseSort(q.Sort),
			Limit:     q.Limit,
			Page:      q.Page,
		}
		if q.StartsAt != nil {
			t := time.Unix(*q.StartsAt, 0)
			in.StartsAt = &t
		}
		if q.EndsAt != nil {
			t := time.Unix(*q.EndsAt, 0)
			in.EndsAt = &t
		}

		c.JSON(http.StatusOK, s.List(in))
	}
}

func parseDirection(s string) store.Direction {
	if s == "desc" {
		return store.Desc
	}
	return store.Asc
}

func parseSort(s string) store.Sort {
	switch s {
	case "updated_at":
		return store.SortUpdatedAt
	case "delete_at":
		return store.SortDeleteAt
	case "key":
		return store.SortKey
	default:
		return store.SortCreatedAt
	}
}

func handleCreateValue(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValuePost
		if err := jsonx.ParseStrictJSONBody(c.Request, &req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}

		resp, err := s.TryCreate(store.CreateInput{Key: req.Key, Value: req.Value, TTL: req.TTL})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

func handleReadValue(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := s.TryRead(c.Param("key"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func handleUpdateValue(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValuePut
		if err := jsonx.ParseStrictJSONBody(c.Request, &req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}

		resp, err := s.TryUpdate(c.Param("key"), store.UpdateInput{Value: req.Value, TTL: req.TTL})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func handleDeleteValue(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.TryDelete(c.Param("key")); err != nil {
			c.JSON(statusFor(err), gin.H{"message": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleAppend(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValueAppend
		if err := jsonx.ParseStrictJSONBody(c.Request, &req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		resp, err := s.TryAppend(c.Param("key"), req.Append)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func handlePrepend(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValuePrepend
		if err := jsonx.ParseStrictJSONBody(c.Request, &req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		resp, err := s.TryPrepend(c.Param("key"), req.Prepend)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func handlePopBack(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValuePopBack
		if err := bindOptionalBody(c, &req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		popped, err := s.TryPopBack(c.Param("key"), req.PopBack)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, popped)
	}
}

func handlePopFront(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValuePopFront
		if err := bindOptionalBody(c, &req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		popped, err := s.TryPopFront(c.Param("key"), req.PopFront)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, popped)
	}
}

func handleIncrement(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValueIncrement
		if err := bindOptionalBody(c, &req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		resp, err := s.TryIncrement(c.Param("key"), req.Increment)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func handleDecrement(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValueDecrement
		if err := bindOptionalBody(c, &req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		resp, err := s.TryDecrement(c.Param("key"), req.Decrement)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// bindOptionalBody decodes dst from the request body when present,
// tolerating a genuinely empty body since pop-back/pop-front/
// increment/decrement all accept `{}` or no body at all.
func bindOptionalBody[T any](c *gin.Context, dst *T) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	err := jsonx.ParseStrictJSONBody(c.Request, dst)
	if err == jsonx.ErrEmptyBody {
		return nil
	}
	return err
}
