// Package config assembles the runtime configuration of the API server and
// the accountantctl CLI from multiple sources, earlier ones winning for
// non-zero fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetStructuredConfig]. A dev run needs only the
// database DSN and the token sign key; everything optional (redis, rate
// provider, firebase, AMQP) degrades gracefully when left unset.
package config
