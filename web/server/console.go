package server

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
)

// ConsoleLevel is the severity of a console line
type ConsoleLevel string

const (
	LevelInfo    ConsoleLevel = "info"
	LevelWarning ConsoleLevel = "warning"
	LevelError   ConsoleLevel = "error"
)

// ConsoleMessage is one log line of a streamed render
type ConsoleMessage struct {
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Level     ConsoleLevel `json:"level"`
	RenderID  string       `json:"renderId"`
	Scene     string       `json:"scene"`
	Picture   int          `json:"picture"`
}

// RenderConsole logs the lines of one render to glog and forwards them to
// the client console. It satisfies core.Logger.
type RenderConsole struct {
	renderID string
	scene    string
	picture  int
	out      chan<- ConsoleMessage
	dropped  int64
}

// NewRenderConsole creates the console of picture (1-based) of a scene.
// A nil out only logs to glog.
func NewRenderConsole(renderID, scene string, picture int, out chan<- ConsoleMessage) *RenderConsole {
	return &RenderConsole{renderID: renderID, scene: scene, picture: picture, out: out}
}

// Printf logs at info severity
func (c *RenderConsole) Printf(format string, args ...interface{}) {
	c.log(LevelInfo, format, args...)
}

// Warningf logs at warning severity
func (c *RenderConsole) Warningf(format string, args ...interface{}) {
	c.log(LevelWarning, format, args...)
}

// Errorf logs at error severity
func (c *RenderConsole) Errorf(format string, args ...interface{}) {
	c.log(LevelError, format, args...)
}

// Dropped returns how many lines did not reach the client because the console was full
func (c *RenderConsole) Dropped() int64 {
	return atomic.LoadInt64(&c.dropped)
}

func (c *RenderConsole) log(level ConsoleLevel, format string, args ...interface{}) {
	message := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	line := fmt.Sprintf("[%s %s#%d] %s", c.renderID, c.scene, c.picture, message)
	switch level {
	case LevelWarning:
		glog.WarningDepth(2, line)
	case LevelError:
		glog.ErrorDepth(2, line)
	default:
		glog.InfoDepth(2, line)
	}

	if c.out == nil {
		return
	}
	select {
	case c.out <- ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
		RenderID:  c.renderID,
		Scene:     c.scene,
		Picture:   c.picture,
	}:
	default:
		atomic.AddInt64(&c.dropped, 1)
	}
}
