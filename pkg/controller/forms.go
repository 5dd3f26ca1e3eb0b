package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nirav-vruttitech/taskreminder/pkg/reminder"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	titleMax       = 50
	descriptionMax = 500
	timeFieldMax   = 4
)

func (c *Controller) switchToTaskForm() {
	title := "New Task"

	if c.editingTask != nil {
		title = "Edit Task"
		c.titleField.SetText(c.editingTask.Title)
		c.descField.SetText(c.editingTask.Description)
	} else {
		c.titleField.SetText("")
		c.descField.SetText("")
	}

	c.taskFormMessage.SetText(fmt.Sprintf("[yellow]%s[white]  (Escape to cancel)", title))

	c.taskForm.SetFocus(0)
	c.pages.SwitchToPage(pageTaskForm)
	c.app.SetInputCapture(c.handleFormKeys)
	c.app.SetFocus(c.taskForm)
}

func (c *Controller) getTaskFormGrid() *tview.Grid {
	c.taskFormMessage = tview.NewTextView().SetDynamicColors(true)
	c.initTaskForm()

	grid := tview.NewGrid().SetBorders(true).SetRows(1, 0)

	grid.AddItem(c.taskFormMessage, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.taskForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) initTaskForm() {
	c.taskForm = tview.NewForm().
		AddInputField("Title", "", titleMax, nil, nil).
		AddInputField("Description", "", descriptionMax, nil, nil)

	c.titleField, _ = c.taskForm.GetFormItemByLabel("Title").(*tview.InputField)
	c.descField, _ = c.taskForm.GetFormItemByLabel("Description").(*tview.InputField)

	c.taskForm.AddButton("Save", c.saveTask)
	c.taskForm.AddButton("Cancel", func() {
		c.showTasks()
	})
}

// saveTask persists the form. Empty and whitespace-only titles never
// reach the repository.
func (c *Controller) saveTask() {
	title := strings.TrimSpace(c.titleField.GetText())
	if title == "" {
		c.taskFormMessage.SetText("[red]title must not be empty")

		return
	}

	if c.editingTask == nil {
		log.Debug().Msgf("adding task with title '%s'", title)
		c.tasks.Add(c.ctx, title, c.descField.GetText())
	} else {
		log.Debug().Int64("id", c.editingTask.ID).Msgf("updating task with title '%s'", title)
		c.tasks.Update(c.ctx, c.editingTask.ID, title, c.descField.GetText())
	}

	c.titleField.SetText("")
	c.descField.SetText("")

	c.showTasks()
}

func (c *Controller) initReminderForm() {
	c.reminderForm = tview.NewForm().
		AddInputField("Hour (0-23)", "", timeFieldMax, nil, nil).
		AddInputField("Minute (0-59)", "", timeFieldMax, nil, nil)

	c.hourField, _ = c.reminderForm.GetFormItemByLabel("Hour (0-23)").(*tview.InputField)
	c.minuteField, _ = c.reminderForm.GetFormItemByLabel("Minute (0-59)").(*tview.InputField)

	c.reminderForm.AddButton("Schedule", c.scheduleReminder)
}

func (c *Controller) scheduleReminder() {
	fireAt, err := c.scheduler.ValidateAndArm(c.ctx, c.hourField.GetText(), c.minuteField.GetText())

	switch {
	case errors.Is(err, reminder.ErrInvalidTime):
		c.reminderMessage.SetText("[red]Please enter valid time")
	case err != nil:
		log.Err(err).Msg("error scheduling the reminder")
		c.reminderMessage.SetText("[red]could not schedule the reminder")
	default:
		c.reminderMessage.SetText(fmt.Sprintf("Notification scheduled for today at %s", fireAt.Format("15:04")))
		c.hourField.SetText("")
		c.minuteField.SetText("")
		c.app.SetFocus(c.reminderTable)
	}
}
