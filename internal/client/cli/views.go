package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/resqsync/internal/client/models"
	"github.com/dmitrijs2005/resqsync/internal/client/profile"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// Profile shows the signed-in user's profile and what it still lacks.
func (a *App) Profile(ctx context.Context) error {
	return a.protected(ctx, func(ctx context.Context, w io.Writer) error {
		res, err := a.newFetcher().Fetch(ctx)
		if err != nil {
			return err
		}
		if res.State != profile.StateLoaded {
			return nil
		}
		a.email = res.Profile.Email
		renderProfile(w, res)
		return nil
	})
}

func renderProfile(w io.Writer, res profile.Result) {
	p := res.Profile
	roles := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		roles = append(roles, string(r))
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "Name:\t%s\n", orDash(p.Name))
	fmt.Fprintf(tw, "Email:\t%s\n", orDash(p.Email))
	fmt.Fprintf(tw, "Roles:\t%s\n", orDash(strings.Join(roles, ", ")))
	fmt.Fprintf(tw, "Phone:\t%s\n", orDash(p.Phone))
	fmt.Fprintf(tw, "Area:\t%s\n", orDash(p.Area))
	fmt.Fprintf(tw, "Bio:\t%s\n", orDash(p.Bio))
	_ = tw.Flush()

	if len(res.MissingFields) > 0 {
		fmt.Fprintf(w, "Profile incomplete, missing: %s\n", strings.Join(res.MissingFields, ", "))
	}
	switch {
	case p.HasRole(models.RoleVolunteer):
		fmt.Fprintln(w, "You are registered as a volunteer.")
	case p.HasRole(models.RoleHelpRequester):
		fmt.Fprintln(w, "You have an open help request.")
	}
}

// Hospitals lists bed availability. It is public.
func (a *App) Hospitals(ctx context.Context, onlyAvailable bool) error {
	hs, err := a.client.Hospitals(ctx)
	if err != nil {
		return a.report(ctx, err)
	}

	if onlyAvailable {
		free := hs[:0:0]
		for _, h := range hs {
			if h.HasFreeBeds() {
				free = append(free, h)
			}
		}
		hs = free
	}
	if len(hs) == 0 {
		fmt.Fprintln(a.out, "No hospitals to show.")
		return nil
	}
	renderHospitals(a.out, hs, false)
	return nil
}

func renderHospitals(w io.Writer, hs []models.Hospital, withVerified bool) {
	tw := newTable(w)
	if withVerified {
		fmt.Fprintln(tw, "NAME\tEMAIL\tAREA\tBEDS\tFREE\tVERIFIED")
	} else {
		fmt.Fprintln(tw, "NAME\tAREA\tBEDS\tFREE\tICU\tCONTACT")
	}
	for _, h := range hs {
		if withVerified {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", h.Name, orDash(h.Email), orDash(h.Area), h.TotalBeds, h.AvailableBeds, yesNo(h.Verified))
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n", h.Name, orDash(h.Area), h.TotalBeds, h.AvailableBeds, h.ICUBeds, orDash(h.Contact))
		}
	}
	_ = tw.Flush()
}

// News lists pandemic news. It is public.
func (a *App) News(ctx context.Context) error {
	items, err := a.client.News(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No news right now.")
		return nil
	}
	for _, n := range items {
		meta := []string{}
		if n.Source != "" {
			meta = append(meta, n.Source)
		}
		if n.PublishedAt != nil {
			meta = append(meta, formatTime(n.PublishedAt))
		}
		line := "- " + n.Title
		if len(meta) > 0 {
			line += " (" + strings.Join(meta, ", ") + ")"
		}
		fmt.Fprintln(a.out, line)
		if n.URL != "" {
			fmt.Fprintln(a.out, "  "+n.URL)
		}
	}
	return nil
}

// Reports lists the available reports.
func (a *App) Reports(ctx context.Context) error {
	return a.protected(ctx, func(ctx context.Context, w io.Writer) error {
		reps, err := a.reportService.List(ctx)
		if err != nil {
			return err
		}
		if len(reps) == 0 {
			fmt.Fprintln(w, "No reports available.")
			return nil
		}
		tw := newTable(w)
		fmt.Fprintln(tw, "ID\tNAME\tCREATED")
		for _, r := range reps {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, orDash(r.Name), formatTime(r.CreatedAt))
		}
		return tw.Flush()
	})
}

// DownloadReport saves the report into dir (the data dir downloads folder
// when empty).
func (a *App) DownloadReport(ctx context.Context, id, dir string) error {
	if dir == "" {
		dir = a.config.DownloadDir()
	}
	return a.protected(ctx, func(ctx context.Context, w io.Writer) error {
		path, err := a.reportService.Download(ctx, id, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Saved %s\n", path)
		return nil
	})
}
