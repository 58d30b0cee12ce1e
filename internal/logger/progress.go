package logger

import (
	"github.com/harrison/advisor/internal/pipeline"
)

// ProgressSink renders pipeline execution events through a
// ConsoleLogger. Task boundaries log at info, failures at error, so
// long runs show which role is currently working instead of a silent
// pause.
type ProgressSink struct {
	log *ConsoleLogger
}

func NewProgressSink(log *ConsoleLogger) *ProgressSink {
	return &ProgressSink{log: log}
}

func (p *ProgressSink) Handle(ev pipeline.Event) {
	switch ev.Type {
	case pipeline.EventRunStarted:
		p.log.Infof("starting %s pipeline (%d tasks, run %s)", ev.Pipeline, ev.Total, ev.RunID)
	case pipeline.EventTaskStarted:
		p.log.Infof("[%d/%d] %s running", ev.TaskNum, ev.Total, ev.Task)
	case pipeline.EventTaskCompleted:
		p.log.Infof("[%d/%d] %s completed", ev.TaskNum, ev.Total, ev.Task)
	case pipeline.EventTaskFailed:
		p.log.Errorf("[%d/%d] %s failed: %v", ev.TaskNum, ev.Total, ev.Task, ev.Err)
	case pipeline.EventRunCompleted:
		p.log.Infof("%s pipeline completed", ev.Pipeline)
	case pipeline.EventRunFailed:
		p.log.Errorf("%s pipeline failed: %v", ev.Pipeline, ev.Err)
	}
}
