package tasksrepobridge

import (
	"net/http"

	"github.com/jrazmi/taskline/infrastructure/web"
)

type queryPath struct {
	TaskID string
}

func parsePath(r *http.Request) queryPath {
	return queryPath{
		TaskID: web.Param(r, "task_id"),
	}
}
