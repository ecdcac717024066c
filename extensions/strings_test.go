package extensions

import (
	"reflect"
	"testing"
)

func TestStringsLibrary(t *testing.T) {
	tests := []struct {
		name    string
		luaCode string
		want    any
	}{
		{
			name:    "strings:upper should make all characters upper case",
			luaCode: `return launchboard.strings:upper("ksc lc-39a")`,
			want:    "KSC LC-39A",
		},
		{
			name:    "strings:lower should make all characters lower case",
			luaCode: `return launchboard.strings:lower("VAFB SLC-4E")`,
			want:    "vafb slc-4e",
		},
		{
			name:    "strings:trim should remove surrounding whitespace",
			luaCode: `return launchboard.strings:trim("  F9 FT B1021.1 ")`,
			want:    "F9 FT B1021.1",
		},
		{
			name:    `strings:replace (without replacement and occurence) should fall back to ""`,
			luaCode: `return launchboard.strings:replace("CCAFS LC-40", "CCAFS ")`,
			want:    "LC-40",
		},
		{
			name:    `strings:replace (with replacement and with occurence) should replace n times`,
			luaCode: `return launchboard.strings:replace("a-a-a", "a", "b", 2)`,
			want:    "b-b-a",
		},
		{
			name:    "strings:contains should return true if input contains substring",
			luaCode: `return launchboard.strings:contains("F9 v1.1 B1003", "v1.1")`,
			want:    true,
		},
		{
			name:    "strings:has_prefix should return false if string lacks prefix",
			luaCode: `return launchboard.strings:has_prefix("KSC LC-39A", "CCAFS")`,
			want:    false,
		},
		{
			name:    "strings:has_suffix should return true if string has suffix",
			luaCode: `return launchboard.strings:has_suffix("CCAFS SLC-40", "SLC-40")`,
			want:    true,
		},
		{
			name:    "strings:split should return the parts as a table",
			luaCode: `return launchboard.strings:split("F9 FT B1029.2", " ")`,
			want:    []any{"F9", "FT", "B1029.2"},
		},
		{
			name:    "strings:substring should clamp end to the input length",
			luaCode: `return launchboard.strings:substring("launch", 3, 10)`,
			want:    "nch",
		},
		{
			name:    "strings:substring should return an empty string if end < start",
			luaCode: `return launchboard.strings:substring("launch", 4, 2)`,
			want:    "",
		},
		{
			name:    "strings:substring should clamp a negative start to 0",
			luaCode: `return launchboard.strings:substring("launch", -5, 3)`,
			want:    "lau",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runtime := setupTestRuntime(t, "")

			err := runtime.ExecuteLua(tt.luaCode)
			if err != nil {
				t.Fatalf("executing lua code %s : %v", tt.luaCode, err)
			}

			got := goValue(runtime.LuaState, -1)

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("\nwanted:\n%v (%T)\ngot:\n%v (%T)", tt.want, tt.want, got, got)
			}
		})
	}
}
