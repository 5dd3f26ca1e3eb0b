// Package controller mediates between the stores and the terminal view.
// It is the caller-facing layer: everything it does goes through the
// task repository, the reminder scheduler, and the reminder event log.
package controller

import (
	"context"
	"fmt"
	"sort"

	"github.com/Nirav-vruttitech/taskreminder/pkg/events"
	"github.com/Nirav-vruttitech/taskreminder/pkg/notify"
	"github.com/Nirav-vruttitech/taskreminder/pkg/reminder"
	"github.com/Nirav-vruttitech/taskreminder/pkg/tasks"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// page names used with tview.Pages.
const (
	pageTasks     = "tasks"
	pageTaskForm  = "taskForm"
	pageReminders = "reminders"
	pageDelivered = "delivered"
)

const (
	descTitleRatio = 2
	headerHeight   = 4
	formHeight     = 9
	headerCols     = 3
)

// Controller mediates between the stores and the view.
type Controller struct {
	ctx       context.Context
	tasks     *tasks.Repository
	eventLog  *events.Log
	scheduler *reminder.Scheduler
	notifier  *notify.TimerNotifier

	app   *tview.Application
	pages *tview.Pages

	taskTable     *tview.Table
	reminderTable *tview.Table

	taskForm        *tview.Form
	titleField      *tview.InputField
	descField       *tview.InputField
	taskFormMessage *tview.TextView

	reminderForm    *tview.Form
	hourField       *tview.InputField
	minuteField     *tview.InputField
	reminderMessage *tview.TextView

	taskList  []tasks.Task
	eventList []events.ReminderEvent

	selectedTask  *tasks.Task
	selectedEvent *events.ReminderEvent
	editingTask   *tasks.Task

	taskEvents     map[tcell.Key]KeyEvent
	reminderEvents map[tcell.Key]KeyEvent
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app.
func NewController(
	ctx context.Context,
	taskRepo *tasks.Repository,
	eventLog *events.Log,
	scheduler *reminder.Scheduler,
	notifier *notify.TimerNotifier,
) *Controller {
	c := Controller{
		ctx:       ctx,
		tasks:     taskRepo,
		eventLog:  eventLog,
		scheduler: scheduler,
		notifier:  notifier,
		app:       tview.NewApplication(),
	}

	initKeys()
	c.initEvents()

	scheduler.SetOnDelivered(c.onDelivered)
	scheduler.SetOnRecorded(c.onRecorded)

	return &c
}

// Go builds the pages and runs the app until the user exits.
func (c *Controller) Go() {
	c.refreshTasks()
	c.refreshReminders()

	c.pages = tview.NewPages()
	c.pages.AddPage(pageTasks, c.getTaskGrid(), true, true)
	c.pages.AddPage(pageTaskForm, c.getTaskFormGrid(), true, false)
	c.pages.AddPage(pageReminders, c.getReminderGrid(), true, false)

	c.showTasks()

	if err := c.app.SetRoot(c.pages, true).Run(); err != nil {
		panic(err)
	}
}

func (c *Controller) refreshTasks() {
	c.taskList = c.tasks.ListAll(c.ctx)

	if len(c.taskList) == 0 {
		c.selectedTask = nil
	}
}

func (c *Controller) refreshReminders() {
	c.eventList = c.eventLog.ListAll(c.ctx)

	if len(c.eventList) == 0 {
		c.selectedEvent = nil
	}
}

func (c *Controller) showTasks() {
	c.refreshTasks()

	c.app.SetInputCapture(c.handleTaskKeys)
	c.pages.SwitchToPage(pageTasks)
	c.app.SetFocus(c.taskTable)
}

func (c *Controller) showReminders() {
	c.refreshReminders()

	c.app.SetInputCapture(c.handleReminderKeys)
	c.pages.SwitchToPage(pageReminders)
	c.app.SetFocus(c.reminderTable)
}

// getHeader returns the header shown above each page: the page name
// followed by its keyboard shortcuts, sorted alphabetically.
func (c *Controller) getHeader(title string, evts map[tcell.Key]KeyEvent) *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	row := 0
	table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", title)))
	row++

	shortcuts := []string{}
	for key, event := range evts {
		shortcuts = append(shortcuts, fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description))
	}

	sort.Strings(shortcuts)

	for i, text := range shortcuts {
		table.SetCell(row+i/headerCols, i%headerCols, tview.NewTableCell(text).SetExpansion(1))
	}

	return table
}

func (c *Controller) getTaskGrid() *tview.Grid {
	c.taskTable = c.getTaskTable()

	grid := tview.NewGrid().SetBorders(true).SetRows(headerHeight, 0)

	grid.AddItem(c.getHeader("tasks", c.taskEvents), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.taskTable, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getReminderGrid() *tview.Grid {
	c.reminderMessage = tview.NewTextView().SetDynamicColors(true)
	c.initReminderForm()
	c.reminderTable = c.getReminderTable()

	grid := tview.NewGrid().SetBorders(true).SetRows(headerHeight, 1, formHeight, 0)

	grid.AddItem(c.getHeader("reminders", c.reminderEvents), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.reminderMessage, 1, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.reminderForm, 2, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.reminderTable, 3, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getTaskTable() *tview.Table {
	table := tview.NewTable().SetBorders(false)

	table.SetContent(&TaskContent{c: c})
	table.SetSelectable(true, false)
	table.SetSelectionChangedFunc(c.setCurrentTask)

	if len(c.taskList) > 0 {
		table.Select(1, 0).SetFixed(1, 0)
	}

	table.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			c.app.Stop()
		}
	})

	return table
}

func (c *Controller) getReminderTable() *tview.Table {
	table := tview.NewTable().SetBorders(false)

	table.SetContent(&ReminderContent{c: c})
	table.SetSelectable(true, false)
	table.SetSelectionChangedFunc(c.setCurrentEvent)

	table.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			c.showTasks()
		}
	})

	return table
}

// when the row selection changes, update the selected Task.
func (c *Controller) setCurrentTask(row, col int) {
	// adjust for the header row
	if idx := row - 1; idx >= 0 && idx < len(c.taskList) {
		c.selectedTask = &c.taskList[idx]
	} else {
		c.selectedTask = nil
	}
}

// when the row selection changes, update the selected ReminderEvent.
func (c *Controller) setCurrentEvent(row, col int) {
	if idx := row - 1; idx >= 0 && idx < len(c.eventList) {
		c.selectedEvent = &c.eventList[idx]
	} else {
		c.selectedEvent = nil
	}
}

func (c *Controller) handleTaskKeys(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if event, ok := c.taskEvents[key]; ok {
		return event.Action(evt)
	}

	return evt
}

func (c *Controller) handleReminderKeys(evt *tcell.EventKey) *tcell.EventKey {
	// let typing reach the schedule form; Escape returns to the table
	switch c.app.GetFocus().(type) {
	case *tview.InputField, *tview.Button:
		if evt.Key() == tcell.KeyEscape {
			c.app.SetFocus(c.reminderTable)

			return nil
		}

		return evt
	}

	key := AsKey(evt)
	if event, ok := c.reminderEvents[key]; ok {
		return event.Action(evt)
	}

	return evt
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyEscape {
		c.showTasks()

		return nil
	}

	return evt
}

// onDelivered runs on the scheduler's goroutine when a reminder fires;
// it presents the notification's actions as a modal.
func (c *Controller) onDelivered(notification notify.Notification) {
	c.app.QueueUpdateDraw(func() {
		buttons := make([]string, 0, len(notification.Actions))
		for _, action := range notification.Actions {
			buttons = append(buttons, action.Title)
		}

		modal := tview.NewModal().
			SetText(fmt.Sprintf("%s\n\n%s", notification.Title, notification.Body)).
			AddButtons(buttons).
			SetDoneFunc(func(index int, label string) {
				if index >= 0 && index < len(notification.Actions) {
					c.notifier.Press(notification.Actions[index].PressActionID)
				}

				c.pages.RemovePage(pageDelivered)
			})

		c.pages.AddPage(pageDelivered, modal, true, true)
		c.app.SetFocus(modal)
	})
}

// onRecorded runs on the scheduler's goroutine after a response row has
// been written.
func (c *Controller) onRecorded() {
	c.app.QueueUpdateDraw(func() {
		c.refreshReminders()
	})
}
