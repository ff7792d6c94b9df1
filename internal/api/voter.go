package api

import (
	"github.com/gin-gonic/gin"
	logging "github.com/inconshreveable/log15"
)

var log = logging.New("module", "api")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

// requestVoter is the messaging sink of one HTTP request: messages are
// collected and returned in the response body.
type requestVoter struct {
	id       string
	messages []string
}

func newRequestVoter(c *gin.Context) *requestVoter {
	return &requestVoter{id: c.GetString("userID"), messages: []string{}}
}

func (v *requestVoter) UserID() string { return v.id }

func (v *requestVoter) Send(message string) {
	v.messages = append(v.messages, message)
}
