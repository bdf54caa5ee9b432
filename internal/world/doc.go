// Package world is the host side of entity matching: the entity model, its
// full-state serialization, and the authoritative comparison built on it.
//
// Entities are layered by capability, each layer adding the fields its save
// routine writes:
//
//	Entity        position, motion, flags, tags, passengers
//	Living        health, effects, attributes, brain
//	Player        inventory, experience, food, abilities
//	ServerPlayer  game mode, respawn point, recipe book
//
// Concrete types embed the layer below (ServerPlayerEntity embeds
// PlayerEntity embeds LivingEntity embeds BaseEntity). Extension types may
// embed any of them and override AddSaveData to write fields of their own.
//
// Saver.SaveWithoutID is the ground truth every fast extractor must agree
// with, and Saver.Predicate is the full-serialization comparison used when a
// pattern names a field no extractor covers.
package world
