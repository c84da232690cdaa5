package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/bitmark-inc/roadside-api/lifecycle"
	"github.com/bitmark-inc/roadside-api/realtime"
	"github.com/bitmark-inc/roadside-api/utils"
)

const (
	socketReadLimit    = 16 * 1024
	socketWriteTimeout = 10 * time.Second
	socketPingInterval = 30 * time.Second
)

var errBinaryFrame = &lifecycle.Error{Kind: lifecycle.KindValidation, Message: "binary frames are not supported"}

// socket upgrades an authenticated client to the notification bus. The
// session is subscribed to its user room and the public request feed;
// conversation rooms are joined by command.
func (s *Server) socket(c *gin.Context) {
	accountID, err := s.verifyToken(c.Request, socketTokenExtractor)
	if err != nil {
		abortWithEncoding(c, http.StatusUnauthorized, errorInvalidToken, err)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: viper.GetStringSlice("server.socket.origins"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")
	conn.SetReadLimit(socketReadLimit)

	lang := c.Query("lang")
	if lang == "" {
		lang = c.GetHeader("Accept-Language")
	}

	session := s.hub.Connect(accountID, utils.PreferredLanguage(lang))
	s.hub.Join(session, realtime.PublicRequestsTopic)
	defer s.hub.Disconnect(session)

	logger := log.WithField("session", session.ID).WithField("requester", accountID)
	logger.Info("socket connected")

	g, ctx := errgroup.WithContext(c.Request.Context())

	g.Go(func() error {
		for {
			typ, data, err := conn.Read(ctx)
			if err != nil {
				return err
			}

			if typ != websocket.MessageText {
				s.hub.Reply(session, realtime.Event{
					Name: realtime.EventError,
					Data: realtime.ErrorPayload{Kind: string(errBinaryFrame.Kind), Message: errBinaryFrame.Message},
				})
				continue
			}

			s.socketRouter.Handle(session, data)
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(socketPingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()

			case <-session.Done():
				return nil

			case f := <-session.Send():
				if err := writeFrame(ctx, conn, f); err != nil {
					return err
				}

			case <-ticker.C:
				pingCtx, cancel := context.WithTimeout(ctx, socketWriteTimeout)
				err := conn.Ping(pingCtx)
				cancel()
				if err != nil {
					return err
				}
			}
		}
	})

	err = g.Wait()
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		conn.Close(websocket.StatusNormalClosure, "")
		logger.Info("socket closed")
	default:
		if errors.Is(err, context.Canceled) {
			logger.Info("socket closed")
			return
		}
		logger.WithError(err).Warn("socket closed")
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, f realtime.Frame) error {
	ctx, cancel := context.WithTimeout(ctx, socketWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, f)
}
