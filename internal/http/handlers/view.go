package handlers

import (
	"launchlist/internal/domain/launch"
	"launchlist/internal/domain/page"
	"launchlist/internal/services/feed"
	"launchlist/internal/services/session"
)

const (
	FooterLoadingMore = "Loading more..."
	FooterNoMore      = "No more items"
	EmptyText         = "No data available"
)

// LaunchRow is one rendered row of the launch list.
type LaunchRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FlightNumber int    `json:"flightNumber"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	PatchImage   string `json:"patchImage,omitempty"`
	LaunchpadID  string `json:"launchpadId,omitempty"`
}

// ListView is what a client needs to draw the launch list screen.
type ListView struct {
	SessionID      string          `json:"sessionId"`
	Revision       uint64          `json:"revision"`
	Rows           []LaunchRow     `json:"rows"`
	SearchQuery    string          `json:"searchQuery"`
	Status         feed.Status     `json:"status"`
	InitialLoading bool            `json:"initialLoading"`
	Refreshing     bool            `json:"refreshing"`
	LoadingMore    bool            `json:"loadingMore"`
	HasNextPage    bool            `json:"hasNextPage"`
	Pagination     page.Pagination `json:"pagination"`
	Footer         string          `json:"footer,omitempty"`
	EmptyText      string          `json:"emptyText,omitempty"`
	Notices        []feed.Notice   `json:"notices"`
}

func row(l launch.Launch) LaunchRow {
	return LaunchRow{
		ID:           l.ID,
		Name:         l.Name,
		FlightNumber: l.FlightNumber,
		Date:         launch.FormatUnixDate(l.DateUnix),
		Status:       l.StatusLabel(),
		PatchImage:   l.PatchImage(),
		LaunchpadID:  l.LaunchpadID(),
	}
}

// footer is the hint under the last row.
func footer(st feed.State[launch.Launch]) string {
	switch {
	case st.LoadingMore():
		return FooterLoadingMore
	case len(st.Items) > 0 && !st.HasNextPage():
		return FooterNoMore
	default:
		return ""
	}
}

func renderList(s *session.Session, st feed.State[launch.Launch], notices []feed.Notice) ListView {
	rows := make([]LaunchRow, 0, len(st.Items))
	for _, l := range st.Items {
		rows = append(rows, row(l))
	}
	if notices == nil {
		notices = []feed.Notice{}
	}

	v := ListView{
		SessionID:      s.ID,
		Revision:       s.Revision(),
		Rows:           rows,
		SearchQuery:    st.SearchQuery,
		Status:         st.Status,
		InitialLoading: st.InitialLoading(),
		Refreshing:     st.Refreshing(),
		LoadingMore:    st.LoadingMore(),
		HasNextPage:    st.HasNextPage(),
		Pagination:     st.Pagination,
		Footer:         footer(st),
		Notices:        notices,
	}
	if len(rows) == 0 && !st.Refreshing() {
		v.EmptyText = EmptyText
	}
	return v
}
