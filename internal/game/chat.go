package game

import (
	"fmt"
	"sort"
	"strings"
)

// chatRoom is a private day-time chat room. The owner controls who may
// join.
type chatRoom struct {
	name       string
	owner      *Player
	members    map[*Player]bool
	authorized map[*Player]bool
}

// ChatRooms manages the session's private chat rooms. Rooms are
// transient: everything is cleared when night falls.
type ChatRooms struct {
	rooms map[string]*chatRoom
}

// NewChatRooms returns an empty room set.
func NewChatRooms() *ChatRooms {
	return &ChatRooms{rooms: make(map[string]*chatRoom)}
}

func (c *ChatRooms) room(name string) (*chatRoom, error) {
	room, ok := c.rooms[strings.ToLower(name)]
	if !ok {
		return nil, Rulef("No such room: %s", name)
	}
	return room, nil
}

// Create makes a new room owned by its creator, who joins immediately.
func (c *ChatRooms) Create(owner *Player, name string) error {
	key := strings.ToLower(name)
	if _, exists := c.rooms[key]; exists {
		return Rulef("Room %s already exists.", name)
	}
	c.rooms[key] = &chatRoom{
		name:       name,
		owner:      owner,
		members:    map[*Player]bool{owner: true},
		authorized: map[*Player]bool{owner: true},
	}
	return nil
}

// Authorize lets the room owner admit a player.
func (c *ChatRooms) Authorize(owner *Player, name string, p *Player) error {
	room, err := c.room(name)
	if err != nil {
		return err
	}
	if room.owner != owner {
		return Rulef("Only %s can authorize players for %s.", room.owner, room.name)
	}
	room.authorized[p] = true
	return nil
}

// Revoke removes a player's authorization and membership.
func (c *ChatRooms) Revoke(owner *Player, name string, p *Player) error {
	room, err := c.room(name)
	if err != nil {
		return err
	}
	if room.owner != owner {
		return Rulef("Only %s can revoke players from %s.", room.owner, room.name)
	}
	if p == room.owner {
		return Rulef("The owner cannot be revoked.")
	}
	delete(room.authorized, p)
	delete(room.members, p)
	return nil
}

// Join adds an authorized player to the room.
func (c *ChatRooms) Join(p *Player, name string) error {
	room, err := c.room(name)
	if err != nil {
		return err
	}
	if !room.authorized[p] {
		return Rulef("You are not authorized to join %s.", room.name)
	}
	room.members[p] = true
	return nil
}

// Leave removes a player from the room.
func (c *ChatRooms) Leave(p *Player, name string) error {
	room, err := c.room(name)
	if err != nil {
		return err
	}
	if !room.members[p] {
		return Rulef("You are not in %s.", room.name)
	}
	delete(room.members, p)
	return nil
}

// RoomsFor lists the rooms the player is a member of, sorted by name.
func (c *ChatRooms) RoomsFor(p *Player) []string {
	var names []string
	for _, room := range c.rooms {
		if room.members[p] {
			names = append(names, room.name)
		}
	}
	sort.Strings(names)
	return names
}

// Deliver relays a line from a member to everyone else in the room.
func (c *ChatRooms) Deliver(v SessionView, sender *Player, name, message string) error {
	room, err := c.room(name)
	if err != nil {
		return err
	}
	if !room.members[sender] {
		return Rulef("You are not in %s.", room.name)
	}
	line := fmt.Sprintf("[%s] %s: %s", room.name, sender, message)
	for member := range room.members {
		if member != sender {
			v.SendTo(member, line)
		}
	}
	return nil
}

// ClearAll tears down every room. Called at nightfall.
func (c *ChatRooms) ClearAll() {
	c.rooms = make(map[string]*chatRoom)
}
