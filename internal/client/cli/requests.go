package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/resqsync/internal/client/models"
)

var (
	getMultiline   = GetMultiline
	getWithDefault = GetWithDefault
)

const defaultUrgency = "medium"

// HelpRequest submits req, prompting for the category, description and
// urgency when they are missing.
func (a *App) HelpRequest(ctx context.Context, req models.HelpRequest) error {
	return a.protected(ctx, func(ctx context.Context, w io.Writer) error {
		var err error
		if req.Category == "" {
			if req.Category, err = getSimpleText(a.reader, "Category (medical, food, shelter, rescue, other)", w); err != nil {
				return err
			}
		}
		if req.Description == "" {
			if req.Description, err = getMultiline(a.reader, "Describe what you need", w); err != nil {
				return err
			}
		}
		if req.Urgency == "" {
			if req.Urgency, err = getWithDefault(a.reader, "Urgency (low, medium, high)", defaultUrgency, w); err != nil {
				return err
			}
		}

		if err := a.requestService.SubmitHelpRequest(ctx, req); err != nil {
			return err
		}
		fmt.Fprintln(w, "Help request submitted. A volunteer will reach out.")
		return nil
	})
}

// JoinVolunteers registers the user as a volunteer, prompting for skills
// when missing.
func (a *App) JoinVolunteers(ctx context.Context, app models.VolunteerApplication) error {
	return a.protected(ctx, func(ctx context.Context, w io.Writer) error {
		var err error
		if app.Skills == "" {
			if app.Skills, err = getSimpleText(a.reader, "Your skills (e.g. first aid, driving)", w); err != nil {
				return err
			}
		}

		if err := a.requestService.JoinVolunteers(ctx, app); err != nil {
			return err
		}
		fmt.Fprintln(w, "Thank you! You are registered as a volunteer.")
		return nil
	})
}

func (a *App) LeaveVolunteers(ctx context.Context) error {
	return a.protected(ctx, func(ctx context.Context, w io.Writer) error {
		if err := a.requestService.LeaveVolunteers(ctx); err != nil {
			return err
		}
		fmt.Fprintln(w, "You are no longer registered as a volunteer.")
		return nil
	})
}
