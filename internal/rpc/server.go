package rpc

import (
	"log/slog"
	"time"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"
)

func New(logger *slog.Logger, posts PostReader, loc *time.Location) *zenrpc.Server {
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true, AllowCORS: true})
	rpcServer.Register("posts", NewPostsService(posts, loc))
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "verein-site", nil))

	return rpcServer
}
