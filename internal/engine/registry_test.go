package engine

import "testing"

func TestRegister(t *testing.T) {
	before := ProfileCount()

	Register(Profile{Key: "registry-test-a", Label: "A"})
	Register(Profile{Key: "registry-test-b", Label: "B"})

	if ProfileCount() != before+2 {
		t.Errorf("ProfileCount() = %d, want %d", ProfileCount(), before+2)
	}

	p, ok := GetProfile("registry-test-a")
	if !ok || p.Label != "A" {
		t.Errorf("GetProfile() = %+v, %v", p, ok)
	}
	if _, ok := GetProfile("registry-test-missing"); ok {
		t.Error("GetProfile() found an unregistered key")
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() must panic")
		}
	}()

	Register(Profile{Key: "registry-test-dup"})
	Register(Profile{Key: "registry-test-dup"})
}

func TestProfiles_SortedByKey(t *testing.T) {
	profiles := Profiles()
	for i := 1; i < len(profiles); i++ {
		if profiles[i-1].Key >= profiles[i].Key {
			t.Fatalf("profiles out of order: %q before %q", profiles[i-1].Key, profiles[i].Key)
		}
	}
}
