package handler

import "github.com/gin-gonic/gin"

// OrgIDKey is the gin context key the tenant middleware stores the org under.
const OrgIDKey = "org_id"

// orgID returns the tenant of the current request. The middleware guarantees
// the key is set on every /api route.
func orgID(c *gin.Context) string {
	return c.GetString(OrgIDKey)
}
