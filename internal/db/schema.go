package db

import _ "embed"

//go:embed schema.sql
var baseSchema string

// derivedSchema holds tables which are recomputed from Memberful on every
// subscriptions run, see Queries.ResetDerived.
//
//go:embed derived.sql
var derivedSchema string

// Schema creates every table that doesn't exist yet.
var Schema = baseSchema + "\n" + derivedSchema

const dropDerived = `
drop table if exists company_student_subscriptions;
drop table if exists subscribed_periods;
`
