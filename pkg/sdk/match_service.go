package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// MatchService reads archived matches.
type MatchService struct {
	client *Client
}

// List returns match summaries ordered by finish time, newest first.
// Summaries omit the play log.
func (s *MatchService) List(ctx context.Context, limit, offset int) (*MatchList, error) {
	path := fmt.Sprintf("%s/matches", apiV1BasePath)

	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	var list MatchList
	if err := s.client.doJSONRequest(ctx, http.MethodGet, path, query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a full match record including the play log.
func (s *MatchService) Get(ctx context.Context, matchID uuid.UUID) (*MatchRecord, error) {
	path := fmt.Sprintf("%s/matches/%s", apiV1BasePath, matchID)

	var record MatchRecord
	if err := s.client.doJSONRequest(ctx, http.MethodGet, path, nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
