package app

import (
	"github.com/orgball2608/insta-feed/internal/feed/feedimpl"
	"github.com/orgball2608/insta-feed/internal/imaging/imagingimpl"
	"github.com/orgball2608/insta-feed/internal/seed/seedimpl"
	"github.com/orgball2608/insta-feed/internal/session"
	"github.com/orgball2608/insta-feed/internal/share/shareimpl"
	"github.com/orgball2608/insta-feed/internal/storage/storageimpl"
	"github.com/orgball2608/insta-feed/internal/tui"
	"github.com/orgball2608/insta-feed/pkg/config"
	"github.com/orgball2608/insta-feed/pkg/delay"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	logger.FxEvents,
	storageimpl.Module,
	seedimpl.Module,
	session.Module,
	shareimpl.Module,
	feedimpl.Module,
	imagingimpl.Module,
	delay.Module,
	tui.Module,
)
