package http

import "testing"

func TestToSnake(t *testing.T) {
	cases := map[string]string{
		"UserName":            "user_name",
		"Email":               "email",
		"FCMToken":            "fcm_token",
		"SignupType":          "signup_type",
		"BackgroundImageType": "background_image_type",
		"ImageURL":            "image_url",
		"X":                   "x",
		"ZIndex":              "z_index",
	}
	for in, want := range cases {
		if got := toSnake(in); got != want {
			t.Fatalf("toSnake(%q) = %q, want %q", in, got, want)
		}
	}
}
