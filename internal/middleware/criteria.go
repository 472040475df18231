package middleware

import (
	"encoding/json"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow/internal/constants"
	apierrors "github.com/yukikurage/taskflow/internal/errors"
	"github.com/yukikurage/taskflow/internal/models"
)

// LoadViewCriteria restores the client's last filter and sort selections from
// its session, overlays any selections given in the query string, and stores
// the result back in the session.
func LoadViewCriteria() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		criteria := models.DefaultCriteria()
		if raw, ok := session.Get(constants.SessionKeyCriteria).(string); ok && raw != "" {
			if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
				log.Printf("Discarding unreadable view criteria in session: %v", err)
				criteria = models.DefaultCriteria()
			}
		}

		changed := false
		if q, ok := c.GetQuery("q"); ok {
			criteria.Query = q
			changed = true
		}
		if v := c.Query("quick"); v != "" {
			criteria.Quick = models.QuickFilter(v)
			changed = true
		}
		if v := c.Query("category"); v != "" {
			criteria.Category = models.CategoryFilter(v)
			changed = true
		}
		if v := c.Query("status"); v != "" {
			criteria.Status = models.StatusFilter(v)
			changed = true
		}
		if v := c.Query("sort"); v != "" {
			criteria.Sort = models.SortKey(v)
			changed = true
		}

		criteria = criteria.Normalize()
		if err := criteria.Validate(); err != nil {
			apierrors.BadRequest(c, err.Error())
			c.Abort()
			return
		}

		if changed {
			encoded, err := json.Marshal(criteria)
			if err == nil {
				session.Set(constants.SessionKeyCriteria, string(encoded))
				if err := session.Save(); err != nil {
					log.Printf("Failed to save view criteria: %v", err)
				}
			}
		}

		c.Set(constants.ContextKeyCriteria, criteria)
		c.Next()
	}
}

// GetViewCriteria retrieves the criteria resolved by LoadViewCriteria
func GetViewCriteria(c *gin.Context) models.ViewCriteria {
	value, exists := c.Get(constants.ContextKeyCriteria)
	if !exists {
		return models.DefaultCriteria()
	}
	criteria, ok := value.(models.ViewCriteria)
	if !ok {
		return models.DefaultCriteria()
	}
	return criteria
}
