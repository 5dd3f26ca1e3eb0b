package controller

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

func (c *Controller) initEvents() {
	c.taskEvents = map[tcell.Key]KeyEvent{}
	c.reminderEvents = map[tcell.Key]KeyEvent{}

	c.taskEvents[KeyA] = KeyEvent{
		Description: "Add Task",
		Action:      c.getAddTaskAction(),
	}

	c.taskEvents[KeyE] = KeyEvent{
		Description: "Edit Task",
		Action:      c.getEditTaskAction(),
	}

	c.taskEvents[KeyT] = KeyEvent{
		Description: "Toggle Done",
		Action:      c.getToggleAction(),
	}

	c.taskEvents[KeyD] = KeyEvent{
		Description: "Delete Task",
		Action:      c.getDeleteTaskAction(),
	}

	c.taskEvents[KeyR] = KeyEvent{
		Description: "Show Reminders",
		Action:      c.getShowRemindersAction(),
	}

	c.reminderEvents[KeyS] = KeyEvent{
		Description: "Schedule",
		Action:      c.getFocusScheduleFormAction(),
	}

	c.reminderEvents[KeyC] = KeyEvent{
		Description: "Clear Entry",
		Action:      c.getClearEventAction(),
	}

	c.reminderEvents[KeyT] = KeyEvent{
		Description: "Show Tasks",
		Action:      c.getShowTasksAction(),
	}

	c.initExitEvent(c.taskEvents)
	c.initExitEvent(c.reminderEvents)
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.app.Stop()

		log.Info().Msg("terminating application")

		os.Exit(0)

		return key
	}
}

func (c *Controller) initExitEvent(events map[tcell.Key]KeyEvent) {
	events[KeyQ] = KeyEvent{
		Description: "Exit",
		Action:      c.getExitAction(),
	}
}

func (c *Controller) getAddTaskAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.editingTask = nil
		c.switchToTaskForm()

		return key
	}
}

func (c *Controller) getEditTaskAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selectedTask == nil {
			return key
		}

		c.editingTask = c.selectedTask
		c.switchToTaskForm()

		return key
	}
}

func (c *Controller) getToggleAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selectedTask == nil {
			return key
		}

		// pass the task's current state; the store writes the complement
		c.tasks.ToggleCompletion(c.ctx, c.selectedTask.ID, c.selectedTask.Completed == 1)
		c.refreshTasks()

		return key
	}
}

func (c *Controller) getDeleteTaskAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selectedTask == nil {
			return key
		}

		log.Debug().Int64("id", c.selectedTask.ID).Msgf("deleting task '%s'", c.selectedTask.Title)

		c.tasks.Delete(c.ctx, c.selectedTask.ID)
		c.refreshTasks()

		return key
	}
}

func (c *Controller) getShowRemindersAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.showReminders()

		return key
	}
}

func (c *Controller) getShowTasksAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.showTasks()

		return key
	}
}

func (c *Controller) getFocusScheduleFormAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.reminderForm.SetFocus(0)
		c.app.SetFocus(c.reminderForm)

		return nil
	}
}

func (c *Controller) getClearEventAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selectedEvent == nil {
			return key
		}

		c.eventLog.Clear(c.ctx, c.selectedEvent.ID)
		c.refreshReminders()

		return key
	}
}
