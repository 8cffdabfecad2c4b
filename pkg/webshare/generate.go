package webshare

import (
	_ "go.uber.org/mock/gomock"
)

//go:generate mockgen -package mocks -destination mocks/mock_searcher.go github.com/kasuboski/seriez/pkg/webshare Searcher
