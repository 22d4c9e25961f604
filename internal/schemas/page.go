package schemas

import "github.com/franciscosanchezn/nutri-regimen-api/internal/services"

// PageQuery is the skip/limit pair accepted by every list route.
type PageQuery struct {
	Skip  int `form:"skip" binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// Page converts the query into a normalized services.Page.
func (q PageQuery) Page() services.Page {
	return services.Page{Offset: q.Skip, Limit: q.Limit}.Normalize()
}
