package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"
)

// Polls the contact list endpoint until the service answers with 200 OK.
// Useful in scripts that need to block until the stack is up.
func main() {
	urlPtr := flag.String("url", "http://localhost:8080/contacts", "the endpoint to poll")
	flag.Parse()

	totalWaitTime := 0
	for {
		res, err := http.Get(*urlPtr)
		if err == nil {
			if res.StatusCode == http.StatusOK {
				fmt.Println(res.Status)
				break
			}
			fmt.Println(res.Status)
		} else {
			fmt.Println(err)
		}
		totalWaitTime += 5
		fmt.Printf("Waiting %d seconds\n", totalWaitTime)
		time.Sleep(5 * time.Second)
	}
}
