package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/resqsync/internal/client/services"
)

// ManagerList shows the volunteers or hospitals a manager is responsible for.
func (a *App) ManagerList(ctx context.Context, target string) error {
	t, err := services.ParseTarget(target)
	if err != nil {
		return a.report(ctx, err)
	}

	return a.protected(ctx, func(ctx context.Context, w io.Writer) error {
		switch t {
		case services.TargetVolunteers:
			vs, err := a.verificationService.Volunteers(ctx)
			if err != nil {
				return err
			}
			if len(vs) == 0 {
				fmt.Fprintln(w, "No volunteers.")
				return nil
			}
			tw := newTable(w)
			fmt.Fprintln(tw, "NAME\tEMAIL\tAREA\tSKILLS\tVERIFIED")
			for _, v := range vs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", orDash(v.Name), v.Email, orDash(v.Area), orDash(v.Skills), yesNo(v.Verified))
			}
			return tw.Flush()

		default:
			hs, err := a.verificationService.Hospitals(ctx)
			if err != nil {
				return err
			}
			if len(hs) == 0 {
				fmt.Fprintln(w, "No hospitals.")
				return nil
			}
			renderHospitals(w, hs, true)
			return nil
		}
	})
}

// ManagerSetVerified verifies or unverifies one volunteer or hospital.
func (a *App) ManagerSetVerified(ctx context.Context, target, email string, verified bool) error {
	t, err := services.ParseTarget(target)
	if err != nil {
		return a.report(ctx, err)
	}

	return a.protected(ctx, func(ctx context.Context, w io.Writer) error {
		if err := a.verificationService.SetVerified(ctx, t, email, verified); err != nil {
			return err
		}
		state := "unverified"
		if verified {
			state = "verified"
		}
		fmt.Fprintf(w, "%s is now %s.\n", email, state)
		return nil
	})
}
