package store

import "fmt"

// Key layout, per the core's storage design: every event, its metadata,
// and every index entry lives at one fixed, deterministic key shape.
func evKey(said string) string           { return "ev/" + said }
func metaKey(said string) string         { return "meta/" + said }
func attKey(said string, n int) string   { return fmt.Sprintf("att/%s/%d", said, n) }
func kelIdxKey(aid, sHex string) string  { return fmt.Sprintf("idx/kel/%s/%s", aid, sHex) }
func kelIdxPrefix(aid string) string     { return fmt.Sprintf("idx/kel/%s/", aid) }
func telIdxKey(ri, said string) string   { return fmt.Sprintf("idx/tel/%s/%s", ri, said) }
func telIdxPrefix(ri string) string      { return fmt.Sprintf("idx/tel/%s/", ri) }
func prevIdxKey(priorSaid string) string { return "idx/prev/" + priorSaid }
func kelHeadKey(aid string) string       { return "head/kel/" + aid }
func telHeadKey(ri string) string        { return "head/tel/" + ri }
func alias2idKey(scope, alias string) string { return fmt.Sprintf("map/alias2id/%s/%s", scope, alias) }
func id2aliasKey(scope, said string) string  { return fmt.Sprintf("map/id2alias/%s/%s", scope, said) }
func alias2idPrefix(scope string) string     { return fmt.Sprintf("map/alias2id/%s/", scope) }
func acdcKey(said string) string    { return "acdc/" + said }
func schemaKey(said string) string  { return "schema/" + said }

// evPrefix is the scan root used by ListAllEvents to walk every stored event.
const evPrefix = "ev/"
