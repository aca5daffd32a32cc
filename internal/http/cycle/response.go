package cycle

import (
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
)

type configResponse struct {
	StartDay         int          `json:"start_day"`
	IsActive         bool         `json:"is_active"`
	NextOverrideDate *render.Date `json:"next_override_date"`
}

func toConfigResponse(c *cycle.Config) configResponse {
	return configResponse{
		StartDay:         c.StartDay,
		IsActive:         c.IsActive,
		NextOverrideDate: render.DatePtr(c.NextOverrideDate),
	}
}

type overrideResponse struct {
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	CycleName string      `json:"cycle_name"`
	StartDate render.Date `json:"override_start_date"`
	Reason    string      `json:"reason,omitempty"`
}

func toOverrideResponse(o *cycle.Override) overrideResponse {
	return overrideResponse{
		Year:      o.Year,
		Month:     int(o.Month),
		CycleName: cycle.MonthName(o.Month),
		StartDate: render.DateOf(o.StartDate),
		Reason:    o.Reason,
	}
}

// Response is the wire shape of a cycle, shared with the report handlers.
type Response struct {
	Name      string      `json:"cycle_name"`
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	StartDate render.Date `json:"start_date"`
	EndDate   render.Date `json:"end_date"`
	Days      int         `json:"days"`
}

func ToResponse(c cycle.Cycle) Response {
	return Response{
		Name:      c.Name,
		Year:      c.Year,
		Month:     int(c.Month),
		StartDate: render.DateOf(c.Start),
		EndDate:   render.DateOf(c.End),
		Days:      c.Days(),
	}
}

type MonthResponse struct {
	Response
	HasOverride bool `json:"has_override"`
	IsCurrent   bool `json:"is_current"`
	IsPast      bool `json:"is_past"`
}

func ToMonthResponse(m cycle.MonthCycle) MonthResponse {
	return MonthResponse{
		Response:    ToResponse(m.Cycle),
		HasOverride: m.HasOverride,
		IsCurrent:   m.IsCurrent,
		IsPast:      m.IsPast,
	}
}

func ToMonthList(months []cycle.MonthCycle) []MonthResponse {
	resp := make([]MonthResponse, len(months))
	for i, m := range months {
		resp[i] = ToMonthResponse(m)
	}

	return resp
}
