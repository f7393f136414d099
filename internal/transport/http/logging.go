package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	handlerErrorKey    = "http.handler.error"
	maxLoggedBody      = 2048
	redacted           = "redacted"
)

// registerLogging emits one structured entry per request. Bodies are
// captured with BodyDump and summarised with credentials redacted.
func registerLogging(e *echo.Echo, logger logrus.FieldLogger) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			clientID := "anonymous"
			if id, ok := CurrentClientID(c); ok {
				clientID = id
			}
			userID := "anonymous"
			if session, ok := CurrentSession(c); ok {
				userID = session.ID
			}

			fields := logrus.Fields{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"client_id":  clientID,
				"user_id":    userID,
				"latency_ms": v.Latency.Milliseconds(),
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
			}
			if body := c.Get(requestBodyLogKey); body != nil {
				fields["request_body"] = body
			}
			if body := c.Get(responseBodyLogKey); body != nil {
				fields["response_body"] = body
			}
			if v.Error != nil {
				fields["error"] = v.Error.Error()
			} else if msg, ok := c.Get(handlerErrorKey).(string); ok {
				fields["error"] = msg
			}

			entry := logger.WithFields(fields)
			switch {
			case v.Status >= http.StatusInternalServerError:
				entry.Error("request failed")
			case v.Status >= http.StatusBadRequest:
				entry.Warn("request rejected")
			default:
				entry.Info("request handled")
			}
			return nil
		},
	}))

	e.Use(middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/swagger")
		},
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
				c.Set(requestBodyLogKey, summary)
			}
			if summary := sanitizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
				c.Set(responseBodyLogKey, summary)
			}
		},
	}))
}

func sanitizeBody(body []byte, contentType string) any {
	if len(body) == 0 {
		return nil
	}
	mediaType, params, _ := mime.ParseMediaType(strings.TrimSpace(contentType))

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		return sanitizeMultipart(body, params["boundary"])
	case mediaType == echo.MIMEApplicationJSON || json.Valid(body):
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return limitJSONSize(redactJSON(data, ""))
		}
	}

	if isBinary(body) {
		return "binary"
	}
	text := string(body)
	if strings.Contains(strings.ToLower(text), "password") {
		return redacted
	}
	return clampString(text)
}

func redactJSON(value any, key string) any {
	if isSecretKey(key) {
		return redacted
	}
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = redactJSON(item, strings.ToLower(k))
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = redactJSON(item, key)
		}
		return out
	case string:
		if isBinary([]byte(v)) {
			return "binary"
		}
		return clampString(v)
	default:
		return v
	}
}

// Client tokens are as sensitive as passwords: they unlock a storage namespace.
func isSecretKey(key string) bool {
	return strings.Contains(key, "password") || key == "token"
}

func sanitizeMultipart(body []byte, boundary string) any {
	if boundary == "" {
		return "binary"
	}
	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	fields := make(map[string]any)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "binary"
		}
		name := part.FormName()
		switch {
		case name == "":
		case part.FileName() != "":
			fields[name] = "binary"
		default:
			data, err := io.ReadAll(io.LimitReader(part, maxLoggedBody+1))
			if err != nil {
				fields[name] = "binary"
			} else {
				fields[name] = redactJSON(string(data), strings.ToLower(name))
			}
		}
		_ = part.Close()
	}
	if len(fields) == 0 {
		return "binary"
	}
	return fields
}

func limitJSONSize(value any) any {
	buf, err := json.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	return map[string]any{
		"_truncated": true,
		"_size":      len(buf),
		"_preview":   clampString(string(buf[:maxLoggedBody/4])),
	}
}

func isBinary(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}
