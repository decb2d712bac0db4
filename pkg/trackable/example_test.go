package trackable_test

import (
	"fmt"

	"github.com/trackable-go/trackable/pkg/ixid"
	"github.com/trackable-go/trackable/pkg/trackable"
)

func ExampleTrack() {
	u, err := trackable.Track("https://img.example/photo?w=200", ixid.Tracking{
		App:   ixid.String("My App"),
		Label: ixid.String("New York"),
	})
	if err != nil {
		panic(err)
	}

	fmt.Println(u)
	// Output: https://img.example/photo?w=200&ixid=bXktYXBwOztuZXcteW9yazs7Ow==
}

func ExampleDecode() {
	r, err := trackable.Decode("https://img.example/photo?w=200&ixid=bXktYXBwOztuZXcteW9yazs7Ow==")
	if err != nil {
		panic(err)
	}

	fmt.Println(r.URL)
	fmt.Println(*r.Tracking.App, *r.Tracking.Label)
	// Output:
	// https://img.example/photo?w=200
	// my-app new-york
}

func ExampleNew() {
	tracker := trackable.New(trackable.WithSchema(ixid.SchemaV1))

	u, _ := tracker.Track("https://img.example/photo", ixid.Tracking{App: ixid.String("my-app")})
	fmt.Println(u)
	// Output: https://img.example/photo?ixid=bXktYXBwOzs7Ow==
}
