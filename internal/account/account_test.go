package account

import (
	"errors"
	"reflect"
	"testing"
)

func TestInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		template   string
		sentFolder string
		want       []string
	}{
		{
			name:       "notmuch insert",
			template:   "notmuch insert --folder=$sent_folder +sent -new",
			sentFolder: "home/Sent",
			want:       []string{"notmuch", "insert", "--folder=home/Sent", "+sent", "-new"},
		},
		{
			name:       "no placeholder",
			template:   "msmtp -t --account=work",
			sentFolder: "work/Sent",
			want:       []string{"msmtp", "-t", "--account=work"},
		},
		{
			name:       "placeholder repeated in one token",
			template:   "cp $sent_folder/$sent_folder.bak",
			sentFolder: "x",
			want:       []string{"cp", "x/x.bak"},
		},
		{
			name:       "empty template",
			template:   "",
			sentFolder: "home/Sent",
			want:       nil,
		},
		{
			name:       "extra whitespace between tokens",
			template:   "notmuch  insert\t--folder=$sent_folder",
			sentFolder: "home/Sent",
			want:       []string{"notmuch", "insert", "--folder=home/Sent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(tt.template, tt.sentFolder)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Interpolate(%q, %q) = %v, want %v", tt.template, tt.sentFolder, got, tt.want)
			}
		})
	}
}

func TestResolveEachOwnAddress(t *testing.T) {
	t.Parallel()

	accounts := []Account{
		{Name: "work", FromAddress: "jane@work.example", SentFolder: "work/Sent"},
		{Name: "home", FromAddress: "jane@home.example", SentFolder: "home/Sent"},
		{Name: "club", FromAddress: "jane@club.example", SentFolder: "club/Sent"},
	}

	for _, want := range accounts {
		got, err := Resolve(want.FromAddress, accounts)
		if err != nil {
			t.Fatalf("Resolve(%q): unexpected error: %v", want.FromAddress, err)
		}
		if got.Name != want.Name {
			t.Errorf("Resolve(%q): got account %q, want %q", want.FromAddress, got.Name, want.Name)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	t.Parallel()

	accounts := []Account{
		{Name: "work", FromAddress: "jane@work.example", SentFolder: "work/Sent"},
	}

	_, err := Resolve("stranger@example.com", accounts)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve: got %v, want ErrNotFound", err)
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	t.Parallel()

	accounts := []Account{
		{Name: "first", FromAddress: "jane@example.com"},
		{Name: "second", FromAddress: "jane@example.com"},
	}

	got, err := Resolve("jane@example.com", accounts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "first" {
		t.Errorf("Resolve: got account %q, want %q", got.Name, "first")
	}
}

func TestResolveIsCaseSensitive(t *testing.T) {
	t.Parallel()

	accounts := []Account{
		{Name: "work", FromAddress: "Jane@Work.example"},
	}

	if _, err := Resolve("jane@work.example", accounts); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve with different case: got %v, want ErrNotFound", err)
	}
}
